// Package speech provides the spoken-audio collaborator and the selection
// state machine that drives it.
package speech

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Speaker vocalizes text. Starting a new utterance must not overlap a
// previous one; Cancel stops whatever is playing and is safe to call when
// nothing is.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel() error
}

// activity is implemented by speakers that can tell when an utterance has
// finished on its own.
type activity interface {
	Active() bool
}

// Voice describes how text is spoken.
type Voice struct {
	Lang  string
	Rate  float64
	Pitch float64
}

// DefaultVoice is French at normal rate and pitch.
var DefaultVoice = Voice{Lang: "fr-FR", Rate: 1.0, Pitch: 1.0}

// Validate checks the language tag and the rate/pitch ranges.
func (v Voice) Validate() error {
	if _, err := language.Parse(v.Lang); err != nil {
		return fmt.Errorf("invalid voice language %q: %w", v.Lang, err)
	}
	if v.Rate <= 0 || v.Rate > 10 {
		return fmt.Errorf("voice rate must be in (0, 10]")
	}
	if v.Pitch < 0 || v.Pitch > 2 {
		return fmt.Errorf("voice pitch must be in [0, 2]")
	}
	return nil
}

// BaseLanguage returns the base language subtag of the voice, e.g. "fr" for
// "fr-FR". It falls back to the raw tag when it cannot be parsed.
func (v Voice) BaseLanguage() string {
	tag, err := language.Parse(v.Lang)
	if err != nil {
		return v.Lang
	}
	base, _ := tag.Base()
	return base.String()
}

// Nop is a Speaker that does nothing.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(context.Context, string) error { return nil }

// Cancel implements Speaker.
func (Nop) Cancel() error { return nil }

// State is the state of a Controller.
type State int

const (
	// Idle means no utterance was requested since the last deselection.
	Idle State = iota
	// Speaking means the sentence of the current selection is being spoken.
	// Speakers without an Active method stay Speaking until the next
	// deselection.
	Speaking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Speaking:
		return "speaking"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller turns keyword selection into speech. Every new utterance is
// preceded by a Cancel, so the latest selection always wins and nothing is
// queued.
type Controller struct {
	mu      sync.Mutex
	speaker Speaker
	enabled bool
	state   State
	current string
}

// NewController returns a Controller in the Idle state. A nil speaker is
// treated as Nop.
func NewController(sp Speaker, enabled bool) *Controller {
	if sp == nil {
		sp = Nop{}
	}
	return &Controller{speaker: sp, enabled: enabled}
}

// Select speaks sentence when voice is enabled, cancelling any utterance in
// flight first.
func (c *Controller) Select(ctx context.Context, sentence string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return nil
	}
	if err := c.speaker.Cancel(); err != nil {
		return fmt.Errorf("failed to cancel utterance: %w", err)
	}
	c.state = Idle
	c.current = ""
	if sentence == "" {
		return nil
	}
	if err := c.speaker.Speak(ctx, sentence); err != nil {
		return fmt.Errorf("failed to speak: %w", err)
	}
	c.state = Speaking
	c.current = sentence
	return nil
}

// Deselect cancels the utterance in flight and returns to Idle.
func (c *Controller) Deselect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

// SetEnabled toggles voice output. Disabling cancels the current utterance.
func (c *Controller) SetEnabled(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if enabled {
		return nil
	}
	return c.stopLocked()
}

// Enabled reports whether voice output is on.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// State returns the current state. An utterance that finished by itself
// moves the controller back to Idle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	return c.state
}

// Current returns the sentence being spoken, or "" when Idle.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	return c.current
}

func (c *Controller) refreshLocked() {
	if c.state != Speaking {
		return
	}
	if a, ok := c.speaker.(activity); ok && !a.Active() {
		c.state = Idle
		c.current = ""
	}
}

func (c *Controller) stopLocked() error {
	c.state = Idle
	c.current = ""
	if err := c.speaker.Cancel(); err != nil {
		return fmt.Errorf("failed to cancel utterance: %w", err)
	}
	return nil
}
