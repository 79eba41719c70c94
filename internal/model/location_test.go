package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_Distance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Location
		want   float64
		planar float64
	}{
		{"same point", NewLocation(1, 2, 3), NewLocation(1, 2, 3), 0, 0},
		{"planar 3-4-5", NewLocation(0, 0, 0), NewLocation(3, 4, 0), 5, 5},
		{"height only", NewLocation(0, 0, 0), NewLocation(0, 0, 7), 7, 0},
		{"negative", NewLocation(-3, 0, 0), NewLocation(0, -4, 0), 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-9)
			assert.InDelta(t, tt.want*tt.want, tt.a.DistanceSquared(tt.b), 1e-9)
			assert.InDelta(t, tt.planar, tt.a.PlanarDistance(tt.b), 1e-9)
		})
	}
}

func TestLocation_Normalized(t *testing.T) {
	n := NewLocation(10, 0, 0).Normalized()
	assert.Equal(t, NewLocation(1, 0, 0), n)

	assert.Equal(t, Location{}, Location{}.Normalized(), "zero vector stays zero")
	assert.InDelta(t, 1.0, NewLocation(3, 4, 12).Normalized().Length(), 1e-9)
}

func TestLocation_Immutable(t *testing.T) {
	loc := NewLocation(1, 2, 3)
	moved := loc.WithZ(10)

	assert.Equal(t, 3.0, loc.Z, "original must not change")
	assert.Equal(t, 10.0, moved.Z)
}

func TestDirectionFromHeading(t *testing.T) {
	east := DirectionFromHeading(0)
	assert.InDelta(t, 1.0, east.X, 1e-9)
	assert.InDelta(t, 0.0, east.Y, 1e-9)

	north := DirectionFromHeading(math.Pi / 2)
	assert.InDelta(t, 0.0, north.X, 1e-9)
	assert.InDelta(t, 1.0, north.Y, 1e-9)

	from := NewLocation(0, 0, 0)
	assert.InDelta(t, math.Pi/2, from.HeadingTowards(NewLocation(0, 5, 0)), 1e-9)
}

func TestRay_At(t *testing.T) {
	r := Ray{Origin: NewLocation(1, 1, 1), Direction: NewLocation(0, 1, 0)}
	assert.Equal(t, NewLocation(1, 3.5, 1), r.At(2.5))
}

func TestInverseLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, v float64
		want    float64
	}{
		{"below range clamps to 0", 1, 30, 0.2, 0},
		{"at lower bound", 1, 30, 1, 0},
		{"middle", 0, 10, 5, 0.5},
		{"at upper bound", 1, 30, 30, 1},
		{"above range clamps to 1", 1, 30, 100, 1},
		{"degenerate range", 5, 5, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InverseLerp(tt.a, tt.b, tt.v), 1e-9)
		})
	}
}
