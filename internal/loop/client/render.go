package client

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/tomz197/spacerunner/internal/draw"
	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/loop/config"
	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
	"github.com/tomz197/spacerunner/internal/shop"
)

// Palette (xterm-256).
const (
	inkProjectile  draw.Ink = 226
	inkCollectible draw.Ink = 220
	inkGemShine    draw.Ink = 230
)

var (
	asteroidInks = []draw.Ink{240, 243, 245, 248, 137, 138}
	starInks     = []draw.Ink{231, 255, 250, 229, 153}
	particleInks = []draw.Ink{196, 202, 208, 214, 220}
	trailInks    = [object.TrailLength]draw.Ink{51, 45, 39, 33, 27, 26, 25, 24}

	powerUpInks = [object.NumPowerUpKinds]draw.Ink{
		object.PowerUpShield:     45,
		object.PowerUpRapidFire:  196,
		object.PowerUpSlowMotion: 141,
		object.PowerUpTripleShot: 46,
	}
)

// sprite is the render resource attached to every entity: a color picked
// once when the entity is created, so it stays stable while it flies.
type sprite struct {
	ink   draw.Ink
	owner *scene
}

// spritePool is a sync.Pool for reusing sprites to reduce allocations.
var spritePool = sync.Pool{
	New: func() any {
		return &sprite{}
	},
}

// Dispose returns the sprite to the pool. Body guarantees a single call.
func (s *sprite) Dispose() {
	s.owner.live--
	s.owner = nil
	spritePool.Put(s)
}

// scene draws the simulation's entities through a perspective camera.
type scene struct {
	rng  *rand.Rand
	live int // Sprites attached and not yet disposed

	points []draw.Point       // Scratch buffer for projected shapes
	order  []*object.Asteroid // Scratch buffer for depth sorting
}

func newScene() *scene {
	return &scene{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// attach is the factory's VisualFunc.
func (sc *scene) attach(class object.Class, _ *object.Body) object.Visual {
	s := spritePool.Get().(*sprite)
	s.owner = sc
	switch class {
	case object.ClassAsteroid:
		s.ink = asteroidInks[sc.rng.Intn(len(asteroidInks))]
	case object.ClassStar:
		s.ink = starInks[sc.rng.Intn(len(starInks))]
	case object.ClassParticle:
		s.ink = particleInks[sc.rng.Intn(len(particleInks))]
	default:
		s.ink = 0
	}
	sc.live++
	return s
}

// Live returns the number of sprites currently attached to entities.
func (sc *scene) Live() int { return sc.live }

func inkOf(b *object.Body, fallback draw.Ink) draw.Ink {
	if s, ok := b.Visual.(*sprite); ok && s.ink != 0 {
		return s.ink
	}
	return fallback
}

// camera follows the ship's height at a reduced rate.
func camera(ship *object.Ship) draw.Camera {
	y := object.ShipStart.Y
	if ship != nil {
		y = ship.Pos.Y
	}
	return draw.Camera{
		Pos:    physics.Vec3{Y: config.CameraBaseY + y*config.CameraFollow, Z: config.CameraZ},
		Focal:  config.CameraFocal,
		Near:   config.CameraNear,
		Width:  config.ViewWidth,
		Height: config.ViewHeight,
	}
}

// draw paints the whole field back to front. The ship is skipped when
// showShip is false.
func (sc *scene) draw(cv *draw.Canvas, w *game.World, model shipModel, showShip bool) {
	cam := camera(w.Ship)

	for _, s := range w.Stars {
		if pt, _, ok := cam.Project(s.Pos); ok && cam.Visible(pt) {
			cv.Set(pt, inkOf(&s.Body, starInks[0]))
		}
	}

	for _, p := range w.PowerUps {
		sc.outline(cv, cam, p.Pos, ringShape, p.Half.X, p.Rot.Y, powerUpInks[p.Kind])
	}

	for _, c := range w.Collectibles {
		sc.fill(cv, cam, c.Pos, gemShape, c.Half.X, c.Rot.Y, inkCollectible)
		if pt, _, ok := cam.Project(c.Pos); ok {
			cv.Set(pt, inkGemShine)
		}
	}

	sc.order = append(sc.order[:0], w.Asteroids...)
	slices.SortFunc(sc.order, func(a, b *object.Asteroid) int {
		return cmp.Compare(b.Pos.Z, a.Pos.Z)
	})
	for _, a := range sc.order {
		sc.fill(cv, cam, a.Pos, rockShape, a.Size/2, a.Rot.Z, inkOf(&a.Body, asteroidInks[0]))
	}
	clear(sc.order)

	for _, p := range w.Projectiles {
		if pt, scale, ok := cam.Project(p.Pos); ok {
			cv.FillRect(pt, p.Half.X*scale, p.Half.Y*scale, inkProjectile)
		}
	}

	for _, p := range w.Particles {
		if pt, scale, ok := cam.Project(p.Pos); ok {
			h := p.Half.X * p.Scale * scale
			cv.FillRect(pt, h, h, inkOf(&p.Body, particleInks[0]))
		}
	}

	if w.Ship == nil || !showShip {
		return
	}
	for i := len(w.Ship.Trail) - 1; i >= 0; i-- {
		seg := &w.Ship.Trail[i]
		if pt, scale, ok := cam.Project(seg.Pos); ok {
			h := seg.Half.X * 2 * seg.Scale * scale
			cv.FillRect(pt, h, h, trailInks[i])
		}
	}
	sc.fill(cv, cam, w.Ship.Pos, model.hull, 1, w.Ship.Tilt, model.ink)
	if len(model.canopy) > 0 {
		sc.fill(cv, cam, w.Ship.Pos, model.canopy, 1, w.Ship.Tilt, model.canopyInk)
	}
}

// project places shape (x/y offsets in the plane facing the camera) around
// center, scaled by size and rolled by angle. Returns nil when center is
// behind the camera.
func (sc *scene) project(cam draw.Camera, center physics.Vec3, shape []physics.Vec3, size, angle float64) []draw.Point {
	if center.Z-cam.Pos.Z < cam.Near {
		return nil
	}
	sin, cos := math.Sincos(angle)
	sc.points = sc.points[:0]
	for _, v := range shape {
		p := physics.Vec3{
			X: center.X + (v.X*cos-v.Y*sin)*size,
			Y: center.Y + (v.X*sin+v.Y*cos)*size,
			Z: center.Z,
		}
		pt, _, _ := cam.Project(p)
		sc.points = append(sc.points, pt)
	}
	return sc.points
}

func (sc *scene) fill(cv *draw.Canvas, cam draw.Camera, center physics.Vec3, shape []physics.Vec3, size, angle float64, ink draw.Ink) {
	if pts := sc.project(cam, center, shape, size, angle); pts != nil {
		cv.FillPolygon(pts, ink)
	}
}

func (sc *scene) outline(cv *draw.Canvas, cam draw.Camera, center physics.Vec3, shape []physics.Vec3, size, angle float64, ink draw.Ink) {
	pts := sc.project(cam, center, shape, size, angle)
	for i := range pts {
		cv.DrawLine(pts[i], pts[(i+1)%len(pts)], ink)
	}
}

// Unit shapes, centered on the origin.
var (
	rockShape = []physics.Vec3{
		{X: 1, Y: 0}, {X: 0.6, Y: 0.6}, {X: 0, Y: 0.9}, {X: -0.65, Y: 0.65},
		{X: -1, Y: 0}, {X: -0.6, Y: -0.55}, {X: 0, Y: -1}, {X: 0.7, Y: -0.7},
	}
	gemShape  = []physics.Vec3{{X: 0, Y: 1}, {X: 0.7, Y: 0}, {X: 0, Y: -1}, {X: -0.7, Y: 0}}
	ringShape = circle(12)
)

func circle(n int) []physics.Vec3 {
	pts := make([]physics.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = physics.Vec3{X: math.Cos(a), Y: math.Sin(a) * 0.4}
	}
	return pts
}

// shipModel is the silhouette of a ship seen from behind, in world units.
type shipModel struct {
	hull      []physics.Vec3
	ink       draw.Ink
	canopy    []physics.Vec3
	canopyInk draw.Ink
}

var shipModels = map[string]shipModel{
	shop.DefaultShipID: {
		hull:      []physics.Vec3{{X: 0, Y: 0.3}, {X: 0.5, Y: -0.3}, {X: 0, Y: -0.15}, {X: -0.5, Y: -0.3}},
		ink:       252,
		canopy:    []physics.Vec3{{X: 0, Y: 0.15}, {X: 0.1, Y: -0.05}, {X: -0.1, Y: -0.05}},
		canopyInk: 39,
	},
	"flying-car": {
		hull:      []physics.Vec3{{X: -0.5, Y: 0}, {X: -0.3, Y: 0.2}, {X: 0.3, Y: 0.2}, {X: 0.5, Y: 0}, {X: 0.5, Y: -0.3}, {X: -0.5, Y: -0.3}},
		ink:       160,
		canopy:    []physics.Vec3{{X: -0.25, Y: 0.05}, {X: -0.2, Y: 0.15}, {X: 0.2, Y: 0.15}, {X: 0.25, Y: 0.05}},
		canopyInk: 117,
	},
	"futuristic-spaceship": {
		hull:      []physics.Vec3{{X: 0, Y: 0.35}, {X: 0.2, Y: 0}, {X: 0.55, Y: -0.3}, {X: -0.55, Y: -0.3}, {X: -0.2, Y: 0}},
		ink:       81,
		canopy:    []physics.Vec3{{X: 0, Y: 0.2}, {X: 0.08, Y: 0}, {X: -0.08, Y: 0}},
		canopyInk: 231,
	},
	"space-fighter": {
		hull: []physics.Vec3{
			{X: 0, Y: 0.3}, {X: 0.15, Y: 0}, {X: 0.6, Y: 0.2}, {X: 0.5, Y: -0.3},
			{X: -0.5, Y: -0.3}, {X: -0.6, Y: 0.2}, {X: -0.15, Y: 0},
		},
		ink:       202,
		canopy:    []physics.Vec3{{X: 0, Y: 0.15}, {X: 0.07, Y: -0.05}, {X: -0.07, Y: -0.05}},
		canopyInk: 226,
	},
	"flying-saucer": {
		hull: []physics.Vec3{
			{X: 0.5, Y: 0}, {X: 0.35, Y: 0.1}, {X: 0, Y: 0.14}, {X: -0.35, Y: 0.1},
			{X: -0.5, Y: 0}, {X: -0.35, Y: -0.1}, {X: 0, Y: -0.14}, {X: 0.35, Y: -0.1},
		},
		ink:       250,
		canopy:    []physics.Vec3{{X: -0.15, Y: 0.1}, {X: -0.08, Y: 0.28}, {X: 0.08, Y: 0.28}, {X: 0.15, Y: 0.1}},
		canopyInk: 48,
	},
}

// modelFor returns the model of the ship id, or the default model.
func modelFor(id string) shipModel {
	if m, ok := shipModels[id]; ok {
		return m
	}
	return shipModels[shop.DefaultShipID]
}

// shouldRenderBlink reports whether a blinking object is in its visible
// phase at now for the given frequency in Hz.
func shouldRenderBlink(now time.Time, frequency float64) bool {
	phase := int64(float64(now.UnixMilli()) / 1000 * frequency * 2)
	return phase%2 == 0
}
