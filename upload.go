package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidMediaType = errors.New("not an image file")
	ErrFileTooLarge     = errors.New("file exceeds 10MB")
	ErrDecodeFailure    = errors.New("image could not be decoded")
)

// Upload describes a user supplied file before it is decoded.
type Upload struct {
	Path      string
	Name      string
	MediaType string
	Size      int64
}

func inspectUpload(path string) (Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, err
	}
	if info.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Upload{}, err
	}

	return Upload{
		Path:      path,
		Name:      filepath.Base(path),
		MediaType: mtype.String(),
		Size:      info.Size(),
	}, nil
}

// Validate checks the media type first, then the size.
func (u Upload) Validate() error {
	if !strings.HasPrefix(u.MediaType, "image/") {
		return ErrInvalidMediaType
	}
	if u.Size > maxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (u Upload) isSVG() bool {
	return strings.HasPrefix(u.MediaType, "image/svg+xml")
}

func decodeUpload(u Upload) (image.Image, error) {
	file, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	defer file.Close()

	var img image.Image
	if u.isSVG() {
		img, err = rasterizeSVG(file)
	} else {
		img, err = imaging.Decode(file, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecodeFailure)
	}
	return img, nil
}

// rasterizeSVG renders an SVG at its view box size, scaled down so the long
// edge fits svgMaxEdge.
func rasterizeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable view box")
	}
	if edge := math.Max(w, h); edge > svgMaxEdge {
		w, h = w*svgMaxEdge/edge, h*svgMaxEdge/edge
	}
	outW, outH := int(math.Ceil(w)), int(math.Ceil(h))

	icon.SetTarget(0, 0, float64(outW), float64(outH))
	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	scanner := rasterx.NewScannerGV(outW, outH, img, img.Bounds())
	raster := rasterx.NewDasher(outW, outH, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// decodeCmd decodes off the event loop. The result arrives as a message.
func decodeCmd(u Upload) tea.Cmd {
	return func() tea.Msg {
		img, err := decodeUpload(u)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": u.Name, "type": u.MediaType}).Warnf("decode failed: %v", err)
			return decodeFailedMsg{upload: u, err: err}
		}
		b := img.Bounds()
		logrus.WithFields(logrus.Fields{"file": u.Name, "width": b.Dx(), "height": b.Dy()}).Info("image decoded")
		return imageDecodedMsg{upload: u, img: img}
	}
}

// filenameStem is the name without its final extension.
func filenameStem(name string) string {
	if i := strings.LastIndex(name, "."); i != -1 {
		return name[:i]
	}
	return name
}

// cleanDroppedPath normalises what a terminal inserts when a file is
// dropped on it or a path is pasted.
func cleanDroppedPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			s = s[1 : len(s)-1]
		}
	}
	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	s = strings.ReplaceAll(s, `\ `, " ")
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[2:])
		}
	}
	return s
}
