// Package draw renders to ANSI terminals: a colored half-block canvas, a
// chunked writer for network-friendly output and a simple perspective camera.
package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Point is a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// Ink is the color of a sub-pixel as an xterm-256 palette index.
// The zero value is an empty pixel.
type Ink uint8

// Block characters used by Render.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	// What the terminal currently shows per cell (top<<8 | bottom), or
	// cellDirty when text was written over it. Render skips unchanged cells.
	shown []int32

	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
		c.shown = make([]int32, termWidth*termHeight)
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// cellDirty marks a cell whose on-screen content is unknown.
const cellDirty = -1

// ScreenCleared tells the canvas the terminal was wiped, so every cell is
// blank on screen.
func (c *Canvas) ScreenCleared() {
	clear(c.shown)
}

// MarkTextDirty records that n cells starting at the 1-based canvas
// position (col, row) were overwritten with text and must be repainted by
// the next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[row*c.termWidth+x] = cellDirty
	}
}

func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = ink
	}
}

// At returns the ink at a terminal sub-pixel, or 0 outside the canvas.
func (c *Canvas) At(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// Set sets a pixel using logical coordinates.
func (c *Canvas) Set(p Point, ink Ink) {
	c.setPixel(int(math.Round(p.X*c.scaleX)), int(math.Round(p.Y*c.scaleY)), ink)
}

// FillRect fills the axis-aligned rectangle centered on p with half extents
// hw and hh (logical units). At least one pixel is always set.
func (c *Canvas) FillRect(p Point, hw, hh float64, ink Ink) {
	x0 := int(math.Round((p.X - hw) * c.scaleX))
	x1 := int(math.Round((p.X + hw) * c.scaleX))
	y0 := int(math.Round((p.Y - hh) * c.scaleY))
	y1 := int(math.Round((p.Y + hh) * c.scaleY))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.setPixel(x, y, ink)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, ink Ink) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1, ink)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) FillPolygon(points []Point, ink Ink) {
	if len(points) < 3 {
		return
	}
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = math.Min(minY, scaled[i].Y)
		maxY = math.Max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, ink)
			}
		}
	}

	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)], ink)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the last Render using
// colored half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	cur := [2]int{-1, -1} // Active fg/bg, -1 for terminal default

	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*c.termWidth:]
		bottom := c.pixels[(row*2+1)*c.termWidth:]
		for col := 0; col < c.termWidth; col++ {
			t, b := top[col], bottom[col]
			cell := int32(t)<<8 | int32(b)
			idx := row*c.termWidth + col
			if c.shown[idx] == cell {
				continue
			}
			c.shown[idx] = cell

			ch := ' '
			fg, bg := -1, -1
			switch {
			case t == 0 && b == 0:
			case t == b:
				ch, fg = BlockFull, int(t)
			case b == 0:
				ch, fg = BlockUpperHalf, int(t)
			case t == 0:
				ch, fg = BlockLowerHalf, int(b)
			default:
				ch, fg, bg = BlockUpperHalf, int(t), int(b)
			}

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')
			if fg != cur[0] || bg != cur[1] {
				buf = appendColor(buf, fg, bg)
				cur = [2]int{fg, bg}
			}
			buf = utf8.AppendRune(buf, ch)
		}
	}
	if cur != [2]int{-1, -1} {
		buf = append(buf, "\033[0m"...)
	}
	c.renderBuf = buf

	for len(buf) > 0 {
		chunk := buf[:min(len(buf), maxChunkSize)]
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

func appendColor(buf []byte, fg, bg int) []byte {
	buf = append(buf, "\033[0"...)
	if fg >= 0 {
		buf = append(buf, ";38;5;"...)
		buf = strconv.AppendInt(buf, int64(fg), 10)
	}
	if bg >= 0 {
		buf = append(buf, ";48;5;"...)
		buf = strconv.AppendInt(buf, int64(bg), 10)
	}
	return append(buf, 'm')
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height in sub-pixels.
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal position.
// Useful for placing text next to something drawn on the canvas.
func (c *Canvas) LogicalToTerminal(p Point) (col, row int) {
	px := int(math.Round(p.X * c.scaleX))
	py := int(math.Round(p.Y * c.scaleY))
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
