package speech

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// DefaultCommand speaks through espeak-ng.
const DefaultCommand = "espeak-ng -v {base} -s {wpm} -p {pitch99}"

const (
	baseWordsPerMinute = 175
	basePitch          = 50
	maxPitch           = 99
)

// CommandSpeaker runs an external text-to-speech program per utterance. The
// text is passed as the last argument. Template placeholders:
//
//	{lang}    full language tag (fr-FR)
//	{base}    base language (fr)
//	{rate}    raw rate multiplier
//	{wpm}     rate scaled to words per minute (175 at 1.0)
//	{pitch}   raw pitch multiplier
//	{pitch99} pitch scaled to 0-99 (50 at 1.0)
type CommandSpeaker struct {
	template []string
	voice    Voice

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCommandSpeaker parses the command template.
func NewCommandSpeaker(template string, voice Voice) (*CommandSpeaker, error) {
	parts := strings.Fields(template)
	if len(parts) == 0 {
		return nil, fmt.Errorf("speech command is empty")
	}
	if err := voice.Validate(); err != nil {
		return nil, err
	}
	return &CommandSpeaker{template: parts, voice: voice}, nil
}

// Args returns the program and arguments used to speak text.
func (s *CommandSpeaker) Args(text string) (string, []string) {
	r := strings.NewReplacer(
		"{lang}", s.voice.Lang,
		"{base}", s.voice.BaseLanguage(),
		"{rate}", formatFloat(s.voice.Rate),
		"{wpm}", strconv.Itoa(int(math.Round(baseWordsPerMinute*s.voice.Rate))),
		"{pitch}", formatFloat(s.voice.Pitch),
		"{pitch99}", strconv.Itoa(scaledPitch(s.voice.Pitch)),
	)
	args := make([]string, 0, len(s.template))
	for _, part := range s.template[1:] {
		args = append(args, r.Replace(part))
	}
	args = append(args, text)
	return s.template[0], args
}

// Speak starts a new utterance after cancelling the previous one. It returns
// once the process has started.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	name, args := s.Args(text)
	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, name, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	done := make(chan struct{})
	go func() {
		// Exit status is irrelevant: a cancelled utterance exits with a signal.
		_ = cmd.Wait()
		close(done)
	}()
	s.cancel = cancel
	s.done = done
	return nil
}

// Cancel stops the current utterance and waits for its process to exit.
func (s *CommandSpeaker) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}

// Active reports whether an utterance process is still running.
func (s *CommandSpeaker) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *CommandSpeaker) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func scaledPitch(p float64) int {
	v := int(math.Round(basePitch * p))
	if v < 0 {
		return 0
	}
	if v > maxPitch {
		return maxPitch
	}
	return v
}
