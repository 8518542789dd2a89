package core

// Action is a semantic gameplay action, abstracted from physical keys.
// Platform backends translate their key events into actions so the
// engine never sees a terminal library type.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionStop           // S, Down arrow - stop paddle immediately
	ActionLaunch         // Space, W, Up - launch the ball
	ActionPause          // P - pause/unpause
	ActionRestart        // R - restart the level
	ActionQuit           // Q, Esc, Ctrl+C - leave gameplay
	ActionConfirm        // Enter - acknowledge a screen
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStop:
		return "Stop"
	case ActionLaunch:
		return "Launch"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// PlayerID identifies which paddle a key belongs to.
type PlayerID int

const (
	Player1 PlayerID = iota // A/D keys
	Player2                 // Arrow keys
)

// KeyEvent is one translated key press.
type KeyEvent struct {
	Player PlayerID
	Action Action
}

// Key builds a KeyEvent for Player1.
func Key(a Action) KeyEvent {
	return KeyEvent{Player: Player1, Action: a}
}
