package main

import (
	"image"
	"image/color"
)

// Display pairs a surface with the renderer that paints it.
type Display struct {
	Surface  Surface
	Renderer Renderer
}

// Controller turns input events into session mutations. Every mutation is
// followed by a render so both displays always match the session.
type Controller struct {
	session   *Session
	primary   Display
	magnified Display

	dragging     bool
	lastX, lastY float64
	cursor       Cursor
}

func NewController(session *Session, primary, magnified Surface, magnifyScale float64) *Controller {
	return &Controller{
		session:   session,
		primary:   Display{Surface: primary, Renderer: Renderer{Scale: 1, Guides: true}},
		magnified: Display{Surface: magnified, Renderer: Renderer{Scale: magnifyScale, Guides: true}},
	}
}

func (c *Controller) Session() *Session { return c.session }

func (c *Controller) Cursor() Cursor { return c.cursor }

func (c *Controller) Dragging() bool { return c.dragging }

// Render paints the primary display and, while the adjust modal is open,
// the magnified one.
func (c *Controller) Render() {
	c.primary.Renderer.Render(c.primary.Surface, c.session)
	if c.session.Modal {
		c.magnified.Renderer.Render(c.magnified.Surface, c.session)
	}
}

// LoadImage installs a freshly decoded image and switches to editing.
// Appearance settings are kept.
func (c *Controller) LoadImage(img image.Image, filename string) {
	c.session.Source = img
	c.session.Stem = filenameStem(filename)
	c.session.View = ViewEditing
	c.session.Placement = defaultPlacement(img)
	c.Render()
}

func (c *Controller) OnPointerDown(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
	c.cursor = CursorGrabbing
}

func (c *Controller) OnPointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	scale := c.dragScale()
	dx := (x - c.lastX) / scale
	dy := (y - c.lastY) / scale
	c.lastX, c.lastY = x, y
	c.session.Placement = c.session.Placement.moved(dx, dy)
	c.Render()
}

func (c *Controller) OnPointerUp() {
	c.dragging = false
	c.cursor = CursorGrab
}

func (c *Controller) OnPointerEnter() {
	if !c.dragging {
		c.cursor = CursorGrab
	}
}

func (c *Controller) OnPointerLeave() {
	c.dragging = false
	c.cursor = CursorDefault
}

// OnWheel zooms by one step per event. Negative deltaY (scrolling up)
// enlarges the logo.
func (c *Controller) OnWheel(deltaY float64) {
	p := c.session.Placement
	step := -zoomStep
	if deltaY < 0 {
		step = zoomStep
	}
	next := p.zoomed(p.Size+step, c.session.Source)
	if next.Size == p.Size {
		return
	}
	c.session.Placement = next
	c.Render()
}

func (c *Controller) OnNudge(d Direction) {
	var dx, dy float64
	switch d {
	case DirUp:
		dy = -nudgeStep
	case DirDown:
		dy = nudgeStep
	case DirLeft:
		dx = -nudgeStep
	case DirRight:
		dx = nudgeStep
	}
	c.session.Placement = c.session.Placement.moved(dx, dy)
	c.Render()
}

func (c *Controller) ResetPosition() {
	c.session.Placement = defaultPlacement(c.session.Source)
	c.Render()
}

func (c *Controller) OpenModal() {
	c.session.Modal = true
	c.Render()
}

func (c *Controller) CloseModal() {
	c.session.Modal = false
	c.dragging = false
	c.cursor = CursorDefault
}

func (c *Controller) SetBackground(col color.Color) {
	c.session.Appearance.Background = color.NRGBAModel.Convert(col).(color.NRGBA)
	c.Render()
}

func (c *Controller) SetFormat(f Format) {
	c.session.Appearance.Format = f
}

// ShowUpload returns to the upload screen. The current image stays loaded
// until a new one replaces it.
func (c *Controller) ShowUpload() {
	c.CloseModal()
	c.session.View = ViewUpload
}

// ResumeEditing goes back to the editor if there is an image to edit.
func (c *Controller) ResumeEditing() bool {
	if c.session.Source == nil {
		return false
	}
	c.session.View = ViewEditing
	c.Render()
	return true
}

// SetMagnifiedSurface swaps the adjust surface, e.g. after a config reload.
func (c *Controller) SetMagnifiedSurface(s Surface, scale float64) {
	c.magnified = Display{Surface: s, Renderer: Renderer{Scale: scale, Guides: true}}
	c.Render()
}

// ResetApp drops the image and restores every setting to its default.
func (c *Controller) ResetApp() {
	c.session.Source = nil
	c.session.Stem = ""
	c.session.Appearance = defaultAppearance()
	c.session.Placement = defaultPlacement(nil)
	c.session.View = ViewUpload
	c.session.Modal = false
	c.dragging = false
	c.cursor = CursorDefault
}

// dragScale converts magnified surface pixels into canvas units.
func (c *Controller) dragScale() float64 {
	mw, _ := c.magnified.Surface.Size()
	pw, _ := c.primary.Surface.Size()
	if mw <= 0 || pw <= 0 {
		return 1
	}
	return mw / pw
}
