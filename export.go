package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var ErrNoImage = errors.New("no image loaded")

// composeIcon renders the final 130x130 icon without guides.
func composeIcon(sess *Session) (*image.RGBA, error) {
	if sess == nil || sess.Source == nil {
		return nil, ErrNoImage
	}
	s := newSurface(int(canvasSize), int(canvasSize))
	paintComposite(s, sess, 1)

	img, ok := s.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected surface image %T", s.Image())
	}
	return img, nil
}

func exportFilename(stem string, f Format) string {
	return stem + exportSuffix + "." + f.Extension()
}

// Export encodes the icon in the selected format and returns the file name
// it should be saved under.
func Export(sess *Session, w io.Writer) (string, error) {
	img, err := composeIcon(sess)
	if err != nil {
		return "", err
	}

	format := sess.Appearance.Format
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return exportFilename(sess.Stem, format), nil
}

// exportToFile writes the icon into the save directory and returns its path.
func (m *model) exportToFile() (string, error) {
	sess := m.session
	if sess.Source == nil {
		return "", ErrNoImage
	}

	filename := exportFilename(sess.Stem, sess.Appearance.Format)
	path := m.config.GetSavePath(filename)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := Export(sess, file); err != nil {
		return "", err
	}
	if err := file.Sync(); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"format": sess.Appearance.Format.String(),
		"size":   sess.Placement.Size,
	}).Info("icon exported")
	return path, nil
}
