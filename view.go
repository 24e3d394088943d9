package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// The magnified surface is drawn at this cell offset in the adjust view.
// handleMouse relies on it to map terminal cells back to surface pixels.
const (
	modalTop  = 2
	modalLeft = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	noticeStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F85149")).
			Padding(1, 2)
)

func (m model) View() string {
	if m.notice != "" {
		return m.noticeView()
	}
	if m.help {
		return m.helpView()
	}
	if m.session.View == ViewUpload || m.session.Source == nil {
		return m.uploadView()
	}
	if m.session.Modal {
		return m.modalView()
	}
	return m.editorView()
}

func (m model) noticeView() string {
	box := noticeStyle.Render(m.notice + "\n\n" + dimStyle.Render("press any key to continue"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m model) uploadView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Icon Maker"))
	b.WriteString("\n\n")
	b.WriteString("Drop an image onto this window, type its path, or leave the field empty\n")
	b.WriteString("to use a path from the clipboard. Images up to 10MB are accepted.\n\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	if m.loading {
		b.WriteString("Decoding image...\n")
	}

	legend := "enter open | ctrl+c quit"
	if m.session.Source != nil {
		legend = "enter open | esc back to editor | ctrl+c quit"
	}
	b.WriteString(dimStyle.Render(legend))
	return b.String()
}

func (m model) editorView() string {
	sess := m.session
	p := sess.Placement

	var b strings.Builder
	b.WriteString(titleStyle.Render("Icon Maker"))
	b.WriteString("\n\n")
	for _, line := range renderCells(m.primary.Image(), m.config.PreviewWidth) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Size: %gpx  Offset: (%g, %g)\n", p.Size, p.X, p.Y))
	b.WriteString(fmt.Sprintf("Background: %s\n", colorHex(sess.Appearance.Background)))
	b.WriteString(fmt.Sprintf("Format: %s  File: %s\n",
		strings.ToUpper(sess.Appearance.Format.String()),
		exportFilename(sess.Stem, sess.Appearance.Format)))
	b.WriteString("\n")

	if m.editColor {
		b.WriteString(m.colorInput.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("enter apply | esc cancel"))
		return b.String()
	}

	b.WriteString(dimStyle.Render("a adjust | b background | f format | d download | o open | r reset | ? help | q quit"))
	if m.successMessage != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.successMessage))
	}
	return b.String()
}

func (m model) modalView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Adjust logo"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  size %gpx", m.session.Placement.Size)))
	b.WriteString("\n\n")

	indent := strings.Repeat(" ", modalLeft)
	for _, line := range renderCells(m.magnified.Image(), m.editorCols()) {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"drag to move | wheel or +/- to zoom | arrows nudge | 0 recenter | esc close  [%s]",
		m.controller.Cursor())))
	return b.String()
}

// editorCols is the width of the adjust view in cells. It is kept even so
// every cell covers two whole pixel rows.
func (m model) editorCols() int {
	cols := m.config.EditorWidth
	return cols - cols%2
}

// surfacePoint maps a terminal cell to the centre of the magnified surface
// pixels it shows.
func (m model) surfacePoint(col, row int) (float64, float64, bool) {
	cols := m.editorCols()
	rows := cols / 2
	cx := col - modalLeft
	cy := row - modalTop
	if cols <= 0 || cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	w, h := m.magnified.Size()
	x := (float64(cx) + 0.5) * w / float64(cols)
	y := (float64(cy) + 0.5) * h / float64(rows)
	return x, y, true
}

// renderCells downsamples img to a cols x cols square and draws it with
// half blocks, two pixel rows per line.
func renderCells(img image.Image, cols int) []string {
	if img == nil || cols <= 0 {
		return nil
	}
	small := imaging.Resize(img, cols, cols, imaging.Box)

	lines := make([]string, 0, cols/2)
	for y := 0; y+1 < cols; y += 2 {
		var line strings.Builder
		for x := 0; x < cols; x++ {
			top := cellColor(small.NRGBAAt(x, y))
			bottom := cellColor(small.NRGBAAt(x, y+1))
			line.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render("▀"))
		}
		lines = append(lines, line.String())
	}
	return lines
}

func cellColor(c color.NRGBA) lipgloss.Color {
	cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return lipgloss.Color(cf.Hex())
}

func (m model) helpView() string {
	helpLines := []string{
		"Icon Maker Help",
		"===============",
		"",
		"Upload:",
		"-------",
		"  Enter            Open the typed or dropped path",
		"                   (an empty field uses the path in the clipboard)",
		"  Esc              Return to the editor if an image is loaded",
		"",
		"Editor:",
		"-------",
		"  a                Open the adjust view",
		"  b                Set the background color (#rgb, #rrggbb or a name)",
		"  f                Toggle the export format between JPEG and PNG",
		"  d                Save the 130x130 icon to the save directory",
		"  o                Open another image",
		"  r                Start over with default settings",
		"  q                Quit",
		"",
		"Adjust view:",
		"------------",
		"  Mouse drag       Move the logo",
		"  Mouse wheel      Zoom the logo in 2px steps (20px to 200px)",
		"  h/←/j/↓/k/↑/l/→  Nudge the logo by 1px",
		"  +/-              Zoom in or out",
		"  0                Recenter the logo",
		"  Esc              Close the adjust view",
		"",
		"The dashed squares mark the 54px and 90px safe areas. They are never exported.",
		"",
		"Press any key to return.",
	}
	return strings.Join(helpLines, "\n")
}
