package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxesOverlap(t *testing.T) {
	unit := Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"same center", Box{Half: unit}, Box{Half: unit}, true},
		{"touching faces", Box{Half: unit}, Box{Center: Vec3{X: 1}, Half: unit}, true},
		{"separated on x", Box{Half: unit}, Box{Center: Vec3{X: 1.01}, Half: unit}, false},
		{"separated on z only", Box{Half: unit}, Box{Center: Vec3{Z: -3}, Half: unit}, false},
		{"thin and long", Box{Half: Vec3{X: 0.075, Y: 0.075, Z: 0.75}}, Box{Center: Vec3{Z: 1.2}, Half: unit}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoxesOverlap(tt.a, tt.b))
			assert.Equal(t, tt.want, BoxesOverlap(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestVecAndClamp(t *testing.T) {
	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 4}, Vec3{X: 1, Z: 3}.Add(Vec3{Y: 1, Z: 1}))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, Vec3{X: 1, Y: 2, Z: 3}.Scale(2))
	assert.Equal(t, 6.0, Clamp(9, -6, 6))
	assert.Equal(t, -6.0, Clamp(-9, -6, 6))
}
