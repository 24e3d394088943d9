package main

import "image"

// Placement is where the logo sits inside the 130x130 canvas. Size is the
// length of the image's longer edge; X and Y are its top-left corner.
type Placement struct {
	Size float64
	X    float64
	Y    float64
}

// fit scales src so that its longer edge equals size, keeping the aspect
// ratio. Square images take the height branch.
func fit(size float64, src image.Image) (w, h float64) {
	if src == nil {
		return size, size
	}
	b := src.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return size, size
	}
	if iw > ih {
		return size, size * (ih / iw)
	}
	return size * (iw / ih), size
}

func clampSize(size float64) float64 {
	if size < minLogoSize {
		return minLogoSize
	}
	if size > maxLogoSize {
		return maxLogoSize
	}
	return size
}

// defaultPlacement centers src at the default size. Without an image only
// the size is reset.
func defaultPlacement(src image.Image) Placement {
	p := Placement{Size: defaultLogoSize}
	if src == nil {
		return p
	}
	w, h := fit(p.Size, src)
	p.X = (canvasSize - w) / 2
	p.Y = (canvasSize - h) / 2
	return p
}

// zoomed returns p resized to newSize (clamped) with the image center kept
// in place.
func (p Placement) zoomed(newSize float64, src image.Image) Placement {
	newSize = clampSize(newSize)
	if newSize == p.Size {
		return p
	}
	if src != nil {
		oldW, oldH := fit(p.Size, src)
		newW, newH := fit(newSize, src)
		p.X -= (newW - oldW) / 2
		p.Y -= (newH - oldH) / 2
	}
	p.Size = newSize
	return p
}

// moved shifts p without any bounds check; the image may leave the canvas.
func (p Placement) moved(dx, dy float64) Placement {
	p.X += dx
	p.Y += dy
	return p
}

// center is the visual center of the placed image in canvas units.
func (p Placement) center(src image.Image) (float64, float64) {
	w, h := fit(p.Size, src)
	return p.X + w/2, p.Y + h/2
}

// rect is the draw rectangle for src on a surface magnified by scale.
func (p Placement) rect(src image.Image, scale float64) Rect {
	w, h := fit(p.Size, src)
	return Rect{
		X: p.X * scale,
		Y: p.Y * scale,
		W: w * scale,
		H: h * scale,
	}
}
