package main

import (
	"image"
	"image/color"

	"github.com/charmbracelet/bubbles/textinput"
)

// Session is the whole editing state. It is owned by the Controller and
// only mutated from the event loop.
type Session struct {
	Source     image.Image
	Stem       string
	Placement  Placement
	Appearance Appearance
	View       ViewMode
	Modal      bool
}

type Appearance struct {
	Background color.NRGBA
	Format     Format
}

func defaultAppearance() Appearance {
	return Appearance{
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Format:     FormatJPEG,
	}
}

func newSession() *Session {
	return &Session{
		Placement:  defaultPlacement(nil),
		Appearance: defaultAppearance(),
		View:       ViewUpload,
	}
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

type model struct {
	width  int
	height int

	config     *Config
	session    *Session
	controller *Controller
	primary    *ggSurface
	magnified  *ggSurface

	pathInput  textinput.Model
	colorInput textinput.Model
	editColor  bool

	loading        bool
	help           bool
	notice         string
	successMessage string

	pointerInside bool
	pendingPath   string
}

type imageDecodedMsg struct {
	upload Upload
	img    image.Image
}

type decodeFailedMsg struct {
	upload Upload
	err    error
}

type openPathMsg struct {
	path string
}

type configChangedMsg struct {
	config *Config
}
