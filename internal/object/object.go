// Package object defines the entities of the scrolling field and the default
// factory that creates them.
package object

import "github.com/tomz197/spacerunner/internal/physics"

// Class identifies the kind of entity a Body belongs to.
type Class int

const (
	ClassAsteroid Class = iota
	ClassCollectible
	ClassPowerUp
	ClassProjectile
	ClassParticle
	ClassStar
	ClassShip
	ClassTrail
)

var classNames = [...]string{
	ClassAsteroid:    "asteroid",
	ClassCollectible: "collectible",
	ClassPowerUp:     "powerup",
	ClassProjectile:  "projectile",
	ClassParticle:    "particle",
	ClassStar:        "star",
	ClassShip:        "ship",
	ClassTrail:       "trail",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Visual is an opaque resource owned by a rendering collaborator (a mesh,
// sprite or sound handle). The simulation never inspects it; it only
// releases it when the entity is destroyed.
type Visual interface {
	Dispose()
}

// VisualFunc attaches a Visual to a freshly created body. It may return nil.
type VisualFunc func(class Class, body *Body) Visual

// Collider is implemented by anything with a collision volume.
type Collider interface {
	Bounds() physics.Box
}

// Disposable is implemented by entities that hold external resources.
type Disposable interface {
	// Dispose releases external resources. Calling it twice is a no-op.
	Dispose()
	// IsDisposed returns true once Dispose has been called.
	IsDisposed() bool
}

// Body is the state shared by every entity: where it is, how it is turned,
// and the half extents of its axis-aligned collision proxy.
type Body struct {
	Pos    physics.Vec3 // Center position
	Rot    physics.Vec3 // Euler rotation (radians), cosmetic
	Half   physics.Vec3 // Collision half extents
	Visual Visual       // Render resource, nil when headless

	disposed bool
}

// Bounds returns the collision proxy box. The proxy is the only source of
// truth for intersections; any visual model is ignored.
func (b *Body) Bounds() physics.Box {
	return physics.Box{Center: b.Pos, Half: b.Half}
}

// Intersects reports whether the collision volumes of b and other overlap.
func (b *Body) Intersects(other Collider) bool {
	return physics.BoxesOverlap(b.Bounds(), other.Bounds())
}

// Dispose releases the Visual exactly once.
func (b *Body) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	if b.Visual != nil {
		b.Visual.Dispose()
		b.Visual = nil
	}
}

// IsDisposed returns true once the body has been released.
func (b *Body) IsDisposed() bool {
	return b.disposed
}

// DisposeAll disposes every entity in the slice.
func DisposeAll[T Disposable](items []T) {
	for _, it := range items {
		it.Dispose()
	}
}
