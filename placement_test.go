package main

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blankImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		src   image.Image
		size  float64
		wantW float64
		wantH float64
	}{
		{name: "landscape", src: blankImage(200, 100), size: 72, wantW: 72, wantH: 36},
		{name: "portrait", src: blankImage(100, 200), size: 72, wantW: 36, wantH: 72},
		{name: "square", src: blankImage(50, 50), size: 72, wantW: 72, wantH: 72},
		{name: "upscaled", src: blankImage(10, 5), size: 200, wantW: 200, wantH: 100},
		{name: "no image", src: nil, size: 72, wantW: 72, wantH: 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(tt.size, tt.src)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestDefaultPlacement(t *testing.T) {
	t.Run("landscape is centered", func(t *testing.T) {
		p := defaultPlacement(blankImage(200, 100))
		assert.Equal(t, Placement{Size: 72, X: 29, Y: 47}, p)
	})

	t.Run("square is centered", func(t *testing.T) {
		p := defaultPlacement(blankImage(64, 64))
		assert.Equal(t, Placement{Size: 72, X: 29, Y: 29}, p)
	})

	t.Run("no image only resets size", func(t *testing.T) {
		assert.Equal(t, Placement{Size: 72}, defaultPlacement(nil))
	})
}

func TestPlacementZoomed(t *testing.T) {
	src := blankImage(200, 100)
	p := defaultPlacement(src)

	t.Run("keeps the center", func(t *testing.T) {
		next := p.zoomed(74, src)
		assert.Equal(t, Placement{Size: 74, X: 28, Y: 46.5}, next)

		cx, cy := p.center(src)
		nx, ny := next.center(src)
		assert.InDelta(t, cx, nx, 1e-9)
		assert.InDelta(t, cy, ny, 1e-9)
	})

	t.Run("clamps to the size range", func(t *testing.T) {
		assert.Equal(t, minLogoSize, p.zoomed(4, src).Size)
		assert.Equal(t, maxLogoSize, p.zoomed(500, src).Size)
	})

	t.Run("unchanged size is a no-op", func(t *testing.T) {
		moved := p.moved(3, -2)
		assert.Equal(t, moved, moved.zoomed(72, src))
	})
}

func TestPlacementMovedIsUnbounded(t *testing.T) {
	p := Placement{Size: 72, X: 29, Y: 47}.moved(-100, 200)
	assert.Equal(t, Placement{Size: 72, X: -71, Y: 247}, p)
}

func TestPlacementRect(t *testing.T) {
	src := blankImage(200, 100)
	p := defaultPlacement(src)

	assert.Equal(t, Rect{X: 29, Y: 47, W: 72, H: 36}, p.rect(src, 1))
	assert.Equal(t, Rect{X: 87, Y: 141, W: 216, H: 108}, p.rect(src, 3))
}
