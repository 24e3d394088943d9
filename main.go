package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func main() {
	v, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := ParseConfig(v)
	if err != nil {
		log.Fatal(err)
	}

	closer, err := setupLogging(cfg)
	if err != nil {
		log.Printf("logging disabled: %v", err)
	}
	defer closer.Close()

	m := initialModel(cfg)
	if len(os.Args) > 1 {
		m.pendingPath = os.Args[1]
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	watchConfig(v, func(c *Config) {
		p.Send(configChangedMsg{config: c})
	})

	logrus.Info("iconmaker started")
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func newMagnifiedSurface(scale int) *ggSurface {
	side := int(canvasSize) * scale
	return newSurface(side, side)
}

func initialModel(cfg *Config) model {
	session := newSession()
	primary := newSurface(int(canvasSize), int(canvasSize))
	magnified := newMagnifiedSurface(cfg.MagnifyScale)

	pathInput := textinput.New()
	pathInput.Prompt = "> "
	pathInput.Placeholder = "drop an image here or type its path"
	pathInput.CharLimit = 4096
	pathInput.Width = 60
	pathInput.Focus()

	colorInput := textinput.New()
	colorInput.Prompt = "Background: "
	colorInput.Placeholder = "#FFFFFF"
	colorInput.CharLimit = 32

	return model{
		config:     cfg,
		session:    session,
		controller: NewController(session, primary, magnified, float64(cfg.MagnifyScale)),
		primary:    primary,
		magnified:  magnified,
		pathInput:  pathInput,
		colorInput: colorInput,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.pendingPath != "" {
		path := m.pendingPath
		cmds = append(cmds, func() tea.Msg { return openPathMsg{path: path} })
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case openPathMsg:
		cmd := m.openPath(msg.path)
		return m, cmd

	case imageDecodedMsg:
		m.loading = false
		m.controller.LoadImage(msg.img, msg.upload.Name)
		m.pathInput.Reset()
		m.pathInput.Blur()
		m.successMessage = ""
		return m, nil

	case decodeFailedMsg:
		m.loading = false
		m.notice = noticeFor(msg.err)
		return m, nil

	case configChangedMsg:
		m.applyConfig(msg.config)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Notices are blocking: the next key only dismisses them
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	if m.help {
		m.help = false
		return m, nil
	}

	if m.session.View == ViewUpload {
		return m.updateUpload(msg)
	}
	return m.updateEditor(msg)
}

func (m model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.loading {
			return m, nil
		}
		cmd := m.openPath(m.pathInput.Value())
		return m, cmd
	case tea.KeyEscape:
		if m.controller.ResumeEditing() {
			m.pathInput.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editColor {
		return m.updateColorInput(msg)
	}

	key := msg.String()
	if m.session.Modal {
		m.handleModalKey(key)
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
	case "a":
		m.controller.OpenModal()
	case "b":
		m.editColor = true
		m.colorInput.SetValue(colorHex(m.session.Appearance.Background))
		m.colorInput.CursorEnd()
		cmd := m.colorInput.Focus()
		return m, cmd
	case "f":
		if m.session.Appearance.Format == FormatPNG {
			m.controller.SetFormat(FormatJPEG)
		} else {
			m.controller.SetFormat(FormatPNG)
		}
	case "d":
		path, err := m.exportToFile()
		if err != nil {
			logrus.Errorf("export failed: %v", err)
			m.notice = noticeFor(err)
			return m, nil
		}
		m.successMessage = "Saved " + path
	case "o":
		m.controller.ShowUpload()
		m.pathInput.Reset()
		m.successMessage = ""
		cmd := m.pathInput.Focus()
		return m, cmd
	case "r":
		m.controller.ResetApp()
		m.pathInput.Reset()
		m.successMessage = ""
		cmd := m.pathInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m model) updateColorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.colorInput.Value()
		m.editColor = false
		m.colorInput.Blur()
		c, err := parseColor(value)
		if err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.controller.SetBackground(c)
		return m, nil
	case tea.KeyEscape:
		m.editColor = false
		m.colorInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.colorInput, cmd = m.colorInput.Update(msg)
	return m, cmd
}

// openPath validates a file and starts decoding it. An empty path is read
// from the clipboard.
func (m *model) openPath(raw string) tea.Cmd {
	path := cleanDroppedPath(raw)
	if path == "" {
		text, err := readClipboardText()
		if err == nil {
			path = cleanDroppedPath(text)
		}
	}
	if path == "" {
		m.notice = "Type the path of an image, drop a file here, or copy a path to the clipboard."
		return nil
	}

	u, err := inspectUpload(path)
	if err != nil {
		logrus.WithField("path", path).Warnf("cannot open upload: %v", err)
		m.notice = fmt.Sprintf("Could not open %s.", path)
		return nil
	}
	if err := u.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"file": u.Name,
			"type": u.MediaType,
			"size": u.Size,
		}).Warnf("upload rejected: %v", err)
		m.notice = noticeFor(err)
		return nil
	}

	m.loading = true
	return decodeCmd(u)
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMediaType):
		return "Please choose an image file."
	case errors.Is(err, ErrFileTooLarge):
		return "The file is too large. Choose an image of 10MB or less."
	case errors.Is(err, ErrDecodeFailure):
		return "The image could not be read. Try another file."
	case errors.Is(err, ErrNoImage):
		return "Upload an image first."
	case errors.Is(err, errInvalidColor):
		return "Enter a color such as #FFFFFF, #fff or a color name."
	default:
		return err.Error()
	}
}

func (m *model) applyConfig(cfg *Config) {
	old := m.config
	m.config = cfg
	if old == nil || old.MagnifyScale != cfg.MagnifyScale {
		m.magnified = newMagnifiedSurface(cfg.MagnifyScale)
		m.controller.SetMagnifiedSurface(m.magnified, float64(cfg.MagnifyScale))
	}
}

// handleMouse forwards mouse events over the magnified surface to the
// controller in surface pixels. Wheel events there never reach anything else.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.notice != "" || m.session.View != ViewEditing || !m.session.Modal {
		return
	}

	x, y, inside := m.surfacePoint(msg.X, msg.Y)
	if inside != m.pointerInside {
		m.pointerInside = inside
		if inside {
			m.controller.OnPointerEnter()
		} else {
			m.controller.OnPointerLeave()
		}
	}
	if !inside {
		return
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.controller.OnWheel(-1)
	case tea.MouseWheelDown:
		m.controller.OnWheel(1)
	case tea.MouseLeft:
		if m.controller.Dragging() {
			m.controller.OnPointerMove(x, y)
		} else {
			m.controller.OnPointerDown(x, y)
		}
	case tea.MouseMotion:
		m.controller.OnPointerMove(x, y)
	case tea.MouseRelease:
		m.controller.OnPointerUp()
	}
}
