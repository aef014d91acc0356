package player

import "sync"

// Labels used by a play control
const (
	PlayLabel    = "🔊 Play Pronunciation"
	PlayingLabel = "▶️ Playing..."
	NoAudioLabel = "🔊 No Audio"
)

// ControlState is what a play button shows
type ControlState struct {
	Label   string
	Enabled bool
}

// Control is the state behind one play button. Each card owns its own
// control, so concurrent plays never share one.
type Control struct {
	mu       sync.Mutex
	original string
	state    ControlState
	onUpdate func(ControlState)
}

// NewControl creates an enabled control showing label
func NewControl(label string) *Control {
	if label == "" {
		label = PlayLabel
	}
	return &Control{
		original: label,
		state:    ControlState{Label: label, Enabled: true},
	}
}

// State returns the current label and enabled flag
func (c *Control) State() ControlState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnUpdate registers a callback fired on every state change. It may be
// called from a playback goroutine.
func (c *Control) OnUpdate(fn func(ControlState)) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// acquire disables the control for a playback; it fails if a playback is
// already running on it
func (c *Control) acquire() bool {
	c.mu.Lock()
	if !c.state.Enabled {
		c.mu.Unlock()
		return false
	}
	c.state = ControlState{Label: PlayingLabel, Enabled: false}
	fn, st := c.onUpdate, c.state
	c.mu.Unlock()

	if fn != nil {
		fn(st)
	}
	return true
}

func (c *Control) showNoAudio() {
	c.update(ControlState{Label: NoAudioLabel, Enabled: false})
}

func (c *Control) reset() {
	c.update(ControlState{Label: c.original, Enabled: true})
}

func (c *Control) update(st ControlState) {
	c.mu.Lock()
	c.state = st
	fn := c.onUpdate
	c.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}
