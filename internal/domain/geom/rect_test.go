package geom

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := NewRect(20, 200, 78, 79.5)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{X: 50, Y: 220}, true},
		{"left of rect", Point{X: 10, Y: 220}, false},
		{"below rect", Point{X: 50, Y: 300}, false},
		{"on left border", Point{X: 20, Y: 220}, false},
		{"on bottom border", Point{X: 50, Y: 279.5}, false},
		{"just inside corner", Point{X: 20.1, Y: 200.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.point))
		})
	}
}

func TestRect_Center(t *testing.T) {
	c := NewRect(10, 20, 30, 40).Center()
	assert.Equal(t, Point{X: 25, Y: 40}, c)
}

func TestRect_Empty(t *testing.T) {
	assert.True(t, NewRect(0, 0, 0, 10).Empty())
	assert.True(t, NewRect(0, 0, 10, -1).Empty())
	assert.False(t, NewRect(0, 0, 1, 1).Empty())
}

func TestRect_Image(t *testing.T) {
	r := NewRect(96, 192, 96, 96)
	assert.Equal(t, image.Rect(96, 192, 192, 288), r.Image())
}
