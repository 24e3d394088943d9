package main

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Surface is the minimal 2D drawing capability the renderer needs.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillRect(r Rect, c color.Color)
	DrawImage(img image.Image, r Rect)
	StrokeRect(r Rect, c color.Color, lineWidth float64, dash []float64)
}

// labelSurface is implemented by surfaces that can also draw text.
type labelSurface interface {
	DrawLabel(text string, x, y, size float64, c color.Color)
}

var guideColor = color.NRGBA{R: 0xff, A: 178}

// Renderer paints a session onto a surface magnified by Scale. Guides are
// the on-screen size hints and are never part of an export.
type Renderer struct {
	Scale  float64
	Guides bool
}

func (r Renderer) Render(s Surface, sess *Session) {
	if sess == nil || sess.Source == nil {
		return
	}
	s.Clear()
	paintComposite(s, sess, r.Scale)
	if r.Guides {
		drawSizeGuides(s, r.Scale)
	}
}

// paintComposite draws the background and the placed image. It is the part
// shared by the screen and the export.
func paintComposite(s Surface, sess *Session, scale float64) {
	w, h := s.Size()
	s.FillRect(Rect{W: w, H: h}, sess.Appearance.Background)
	if sess.Source != nil {
		s.DrawImage(sess.Source, sess.Placement.rect(sess.Source, scale))
	}
}

func guideRect(side, scale, surfaceW, surfaceH float64) Rect {
	size := side * scale
	return Rect{
		X: (surfaceW - size) / 2,
		Y: (surfaceH - size) / 2,
		W: size,
		H: size,
	}
}

func drawSizeGuides(s Surface, scale float64) {
	w, h := s.Size()
	dash := []float64{4 * scale, 2 * scale}

	inner := guideRect(guideMinSize, scale, w, h)
	outer := guideRect(guideMaxSize, scale, w, h)
	s.StrokeRect(inner, guideColor, scale, dash)
	s.StrokeRect(outer, guideColor, scale, dash)

	// Only the magnified surface has room for the legend
	ls, ok := s.(labelSurface)
	if !ok || scale < 2 {
		return
	}
	for _, g := range []struct {
		side float64
		r    Rect
	}{{guideMinSize, inner}, {guideMaxSize, outer}} {
		ls.DrawLabel(fmt.Sprintf("%.0f", g.side), g.r.X+scale, g.r.Y-scale, 4*scale, guideColor)
	}
}

// ggSurface is a raster Surface backed by a gg context.
type ggSurface struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

func newSurface(w, h int) *ggSurface {
	return &ggSurface{dc: gg.NewContext(w, h)}
}

func (s *ggSurface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

func (s *ggSurface) Image() image.Image {
	return s.dc.Image()
}

func (s *ggSurface) Clear() {
	s.dc.SetColor(color.Transparent)
	s.dc.Clear()
}

func (s *ggSurface) FillRect(r Rect, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *ggSurface) DrawImage(img image.Image, r Rect) {
	b := img.Bounds()
	if b.Empty() || r.W <= 0 || r.H <= 0 {
		return
	}
	s.dc.Push()
	s.dc.Translate(r.X, r.Y)
	s.dc.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	s.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	s.dc.Pop()
}

func (s *ggSurface) StrokeRect(r Rect, c color.Color, lineWidth float64, dash []float64) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth)
	s.dc.SetDash(dash...)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Stroke()
	s.dc.SetDash()
}

func (s *ggSurface) DrawLabel(text string, x, y, size float64, c color.Color) {
	face, err := s.face(size)
	if err != nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawString(text, x, y)
}

func (s *ggSurface) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	ttf, err := monoFont()
	if err != nil {
		return nil, err
	}
	if s.faces == nil {
		s.faces = make(map[float64]font.Face)
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = f
	return f, nil
}

var (
	monoOnce sync.Once
	monoTTF  *truetype.Font
	monoErr  error
)

func monoFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoTTF, monoErr = truetype.Parse(gomono.TTF)
		if monoErr != nil {
			monoErr = fmt.Errorf("failed to parse font: %v", monoErr)
		}
	})
	return monoTTF, monoErr
}
