package breakout

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventLaunch EventKind = iota
	EventWallHit
	EventPaddleHit
	EventBrickHit       // Brick damaged but still alive
	EventBrickDestroyed // Brick HP reached 0, points awarded
	EventLifeLost
	EventWon
	EventLost
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventLaunch:
		return "launch"
	case EventWallHit:
		return "wall"
	case EventPaddleHit:
		return "paddle"
	case EventBrickHit:
		return "brick_hit"
	case EventBrickDestroyed:
		return "brick_destroyed"
	case EventLifeLost:
		return "life_lost"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Event is delivered to Options.OnEvent after the phase that produced it
// has released the lock.
type Event struct {
	Kind   EventKind
	Row    int // Brick row, for brick events
	Col    int // Brick column, for brick events
	Paddle int // Paddle index, for paddle hits
	Points int // Points awarded, for EventBrickDestroyed
	Score  int // Score after the event, where relevant
}
