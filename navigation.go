package main

func nudgeDirection(key string) (Direction, bool) {
	switch key {
	case "h", "left":
		return DirLeft, true
	case "l", "right":
		return DirRight, true
	case "k", "up":
		return DirUp, true
	case "j", "down":
		return DirDown, true
	}
	return 0, false
}

// zoomDelta maps zoom keys onto wheel deltas: "+" behaves like scrolling up.
func zoomDelta(key string) (float64, bool) {
	switch key {
	case "+", "=":
		return -1, true
	case "-", "_":
		return 1, true
	}
	return 0, false
}

// handleModalKey drives the adjust modal from the keyboard.
func (m *model) handleModalKey(key string) {
	if dir, ok := nudgeDirection(key); ok {
		m.controller.OnNudge(dir)
		return
	}
	if delta, ok := zoomDelta(key); ok {
		m.controller.OnWheel(delta)
		return
	}
	switch key {
	case "0", "c":
		m.controller.ResetPosition()
	case "esc", "a":
		m.controller.CloseModal()
		m.pointerInside = false
	}
}
