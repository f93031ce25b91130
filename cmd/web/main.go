package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacerunner/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// page is the data rendered into index.html.
type page struct {
	SSHHost string
	SSHPort string
}

// Command shows the ssh invocation for the page, omitting the default port.
func (p page) Command() string {
	if p.SSHPort == "" || p.SSHPort == "22" {
		return "ssh " + p.SSHHost
	}
	return "ssh -p " + p.SSHPort + " " + p.SSHHost
}

func pageHandler(p page, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, p); err != nil {
			logger.Error("render page", "err", err)
		}
	}
}

func main() {
	envErr := config.LoadDotEnv()
	logger, err := config.NewLogger(os.Stderr, "web")
	if err != nil {
		logger.Fatal("bad logging settings", "err", err)
	}
	if envErr != nil {
		logger.Fatal("failed to load .env", "err", envErr)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	p := page{
		SSHHost: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SSHPort: config.GetEnv("SSH_DISPLAY_PORT", "22"),
	}

	mux := http.NewServeMux()
	mux.Handle("/", pageHandler(p, logger))

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
