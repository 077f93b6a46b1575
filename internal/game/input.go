package game

// InputIntent is the normalized per-tick command the core consumes.
// Every input device (keyboard, gesture camera, websocket client) funnels
// into this shape; the core has no device-specific logic.
type InputIntent struct {
	MoveX float64 `json:"moveX"` // Horizontal axis in [-1, 1]
	MoveY float64 `json:"moveY"` // Vertical axis in [-1, 1]
	Fire  bool    `json:"fire"`
}

// Clamp bounds both axes to [-1, 1]. Out-of-range values from remote
// clients are clamped, not rejected.
func (in *InputIntent) Clamp() {
	if in.MoveX > 1 {
		in.MoveX = 1
	} else if in.MoveX < -1 {
		in.MoveX = -1
	}
	if in.MoveY > 1 {
		in.MoveY = 1
	} else if in.MoveY < -1 {
		in.MoveY = -1
	}
}
