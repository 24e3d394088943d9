package main

type ViewMode int

const (
	ViewUpload ViewMode = iota
	ViewEditing
)

// Format is the export encoding chosen in the appearance settings.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
)

func (f Format) String() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpeg"
}

// Extension is the file extension written after the "130" suffix.
func (f Format) Extension() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpg"
}

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

const (
	canvasSize      = 130.0
	defaultLogoSize = 72.0
	minLogoSize     = 20.0
	maxLogoSize     = 200.0
	zoomStep        = 2.0
	nudgeStep       = 1.0

	guideMinSize = 54.0
	guideMaxSize = 90.0

	maxUploadBytes = 10 * 1024 * 1024
	jpegQuality    = 95
	exportSuffix   = "130"

	// svgMaxEdge caps the rasterized size of vector uploads.
	svgMaxEdge = 1024
)
