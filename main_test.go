package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		SaveDirectory: t.TempDir(),
		MagnifyScale:  3,
		PreviewWidth:  20,
		EditorWidth:   64,
		LogLevel:      "info",
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(model)
	}
	return m
}

// open runs the whole upload flow for path, including the decode command.
func open(t *testing.T, m model, path string) model {
	t.Helper()
	cmd := m.openPath(path)
	require.NotNil(t, cmd, m.notice)
	assert.True(t, m.loading)
	next, _ := m.Update(cmd())
	return next.(model)
}

func TestModelUploadFlow(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(testConfig(t))
	assert.Equal(t, ViewUpload, m.session.View)

	m = open(t, m, writePNG(t, dir, "brand.png", 200, 100))

	assert.False(t, m.loading)
	assert.Empty(t, m.notice)
	assert.Equal(t, ViewEditing, m.session.View)
	assert.Equal(t, "brand", m.session.Stem)
	assert.Equal(t, Placement{Size: 72, X: 29, Y: 47}, m.session.Placement)
	assert.Contains(t, m.View(), "brand130.jpg")
}

func TestModelRejectsUploads(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(testConfig(t))
	m = open(t, m, writePNG(t, dir, "first.png", 40, 40))
	m.controller.OnNudge(DirRight)
	m = press(t, m, "o")
	require.Equal(t, ViewUpload, m.session.View)

	t.Run("too large", func(t *testing.T) {
		cmd := m.openPath(writeLargePNG(t, dir, 15<<20))
		assert.Nil(t, cmd)
		assert.Equal(t, "The file is too large. Choose an image of 10MB or less.", m.notice)
		m.notice = ""
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(dir, "readme.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))
		assert.Nil(t, m.openPath(path))
		assert.Equal(t, "Please choose an image file.", m.notice)
		m.notice = ""
	})

	assert.Equal(t, "first", m.session.Stem)
	assert.Equal(t, 30.0, m.session.Placement.X)
	assert.Equal(t, ViewUpload, m.session.View)

	m = press(t, m, "esc")
	assert.Equal(t, ViewEditing, m.session.View)
}

func TestModelDecodeFailure(t *testing.T) {
	m := initialModel(testConfig(t))
	m.loading = true

	next, _ := m.Update(decodeFailedMsg{err: ErrDecodeFailure})
	m = next.(model)

	assert.False(t, m.loading)
	assert.Equal(t, "The image could not be read. Try another file.", m.notice)
	assert.Equal(t, ViewUpload, m.session.View)
	assert.Contains(t, m.View(), "could not be read")

	m = press(t, m, "x")
	assert.Empty(t, m.notice)
	assert.Empty(t, m.pathInput.Value(), "dismissing key is not typed")
}

func TestModelNoticeBlocksKeys(t *testing.T) {
	m := initialModel(testConfig(t))
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 10, 10))
	m.notice = "something happened"

	m = press(t, m, "r")
	assert.Empty(t, m.notice)
	assert.NotNil(t, m.session.Source)
	assert.Equal(t, ViewEditing, m.session.View)
}

func TestModelEditorKeys(t *testing.T) {
	cfg := testConfig(t)
	m := initialModel(cfg)
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 64, 32))

	m = press(t, m, "f")
	assert.Equal(t, FormatPNG, m.session.Appearance.Format)

	m = press(t, m, "b")
	require.True(t, m.editColor)
	assert.Equal(t, "#FFFFFF", m.colorInput.Value())
	m.colorInput.SetValue("#336699")
	m = press(t, m, "enter")
	assert.False(t, m.editColor)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, m.session.Appearance.Background)

	m = press(t, m, "b")
	m.colorInput.SetValue("#12")
	m = press(t, m, "enter")
	assert.Contains(t, m.notice, "Enter a color")
	m = press(t, m, "x")

	m = press(t, m, "d")
	assert.Equal(t, "Saved "+filepath.Join(cfg.SaveDirectory, "logo130.png"), m.successMessage)
	_, err := os.Stat(filepath.Join(cfg.SaveDirectory, "logo130.png"))
	assert.NoError(t, err)

	m = press(t, m, "?")
	assert.True(t, m.help)
	assert.True(t, strings.HasPrefix(m.View(), "Icon Maker Help"))
	m = press(t, m, "x")
	assert.False(t, m.help)

	m = press(t, m, "r")
	assert.Nil(t, m.session.Source)
	assert.Equal(t, defaultAppearance(), m.session.Appearance)
	assert.Equal(t, ViewUpload, m.session.View)

	_, cmd := initialModel(cfg).Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := initialModel(testConfig(t))
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 10, 10))

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelAdjustKeys(t *testing.T) {
	m := initialModel(testConfig(t))
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 200, 100))

	m = press(t, m, "a")
	require.True(t, m.session.Modal)
	assert.Contains(t, m.View(), "Adjust logo")

	m = press(t, m, "l", "l", "up", "+")
	assert.Equal(t, Placement{Size: 74, X: 30, Y: 45.5}, m.session.Placement)

	m = press(t, m, "-", "0")
	assert.Equal(t, Placement{Size: 72, X: 29, Y: 47}, m.session.Placement)

	m = press(t, m, "esc")
	assert.False(t, m.session.Modal)
	assert.Equal(t, ViewEditing, m.session.View)
}

func TestModelMouse(t *testing.T) {
	m := initialModel(testConfig(t))
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 200, 100))

	mouse := func(m model, x, y int, typ tea.MouseEventType) model {
		next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Type: typ})
		return next.(model)
	}

	// Ignored while the adjust view is closed
	m = mouse(m, modalLeft+10, modalTop+10, tea.MouseWheelUp)
	assert.Equal(t, 72.0, m.session.Placement.Size)

	m = press(t, m, "a")
	m = mouse(m, modalLeft+30, modalTop+15, tea.MouseLeft)
	assert.True(t, m.controller.Dragging())
	assert.Equal(t, CursorGrabbing, m.controller.Cursor())

	// 64 cells span 390 pixels across and 32 rows span 390 down
	m = mouse(m, modalLeft+32, modalTop+16, tea.MouseMotion)
	assert.InDelta(t, 29+2*390.0/64/3, m.session.Placement.X, 1e-9)
	assert.InDelta(t, 47+390.0/32/3, m.session.Placement.Y, 1e-9)

	m = mouse(m, modalLeft+32, modalTop+16, tea.MouseRelease)
	assert.False(t, m.controller.Dragging())
	assert.Equal(t, CursorGrab, m.controller.Cursor())

	m = mouse(m, modalLeft+5, modalTop+5, tea.MouseWheelUp)
	assert.Equal(t, 74.0, m.session.Placement.Size)

	m = mouse(m, modalLeft+5, modalTop+5, tea.MouseLeft)
	m = mouse(m, modalLeft+100, modalTop+5, tea.MouseMotion)
	assert.False(t, m.controller.Dragging())
	assert.Equal(t, CursorDefault, m.controller.Cursor())
	assert.False(t, m.pointerInside)
}

func TestSurfacePoint(t *testing.T) {
	m := initialModel(testConfig(t))

	x, y, ok := m.surfacePoint(modalLeft, modalTop)
	require.True(t, ok)
	assert.InDelta(t, 0.5*390.0/64, x, 1e-9)
	assert.InDelta(t, 0.5*390.0/32, y, 1e-9)

	_, _, ok = m.surfacePoint(modalLeft-1, modalTop)
	assert.False(t, ok)
	_, _, ok = m.surfacePoint(modalLeft+64, modalTop)
	assert.False(t, ok)
	_, _, ok = m.surfacePoint(modalLeft, modalTop+32)
	assert.False(t, ok)
}

func TestModelConfigReload(t *testing.T) {
	cfg := testConfig(t)
	m := initialModel(cfg)
	m = open(t, m, writePNG(t, t.TempDir(), "logo.png", 200, 100))
	m = press(t, m, "a")

	reloaded := *cfg
	reloaded.MagnifyScale = 4
	next, _ := m.Update(configChangedMsg{config: &reloaded})
	m = next.(model)

	w, h := m.magnified.Size()
	assert.Equal(t, 520.0, w)
	assert.Equal(t, 520.0, h)

	m.controller.OnPointerDown(0, 0)
	m.controller.OnPointerMove(8, 4)
	assert.Equal(t, 31.0, m.session.Placement.X)
	assert.Equal(t, 48.0, m.session.Placement.Y)
}

func TestRenderCells(t *testing.T) {
	lines := renderCells(solidImage(130, 130, color.White), 20)
	assert.Len(t, lines, 10)
	assert.Nil(t, renderCells(nil, 20))
}
