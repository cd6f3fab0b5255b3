// internal/game/engine.go
//
// Turn processing for a single GPT Golf session.
// Responsibilities:
//   - Create new sessions for a target word.
//   - Validate a player's prompt (word count, forbidden target word).
//   - Build the generation context from the tail of the dialogue.
//   - Append the player entry and the generated continuation as one turn.
//   - Track state transitions: in progress → won.
//
// Notes:
//   - Sessions are passed by value; a rejected or failed turn returns the input unchanged.
//   - Target words come from the words/daily packages, not from here.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxPromptWords is the most words a player may add in one turn.
	MaxPromptWords = 5
	// ContextWords is how many trailing dialogue tokens the generator sees.
	ContextWords = 29
)

// New constructs a normal-mode session for target.
func New(target string) Session {
	return Session{
		ID:        uuid.NewString(),
		Target:    strings.ToLower(strings.TrimSpace(target)),
		Mode:      ModeNormal,
		Dialogue:  []string{},
		StartedAt: time.Now().UTC(),
	}
}

// NewDaily constructs a daily-mode session for the given date key.
func NewDaily(target, date string) Session {
	s := New(target)
	s.Mode = ModeDaily
	s.Date = date
	return s
}

// SubmitTurn validates prompt, asks gen for a continuation and returns the
// next session state.
//
// Validation rules (first failure wins, no state change):
//   - The session must not already be won.
//   - prompt must have at most MaxPromptWords whitespace-separated words.
//   - prompt must not contain the target word.
//
// A non-nil error means the generator failed; the returned session is then
// the input session and no turn is recorded. There is no retry.
func (s Session) SubmitTurn(ctx context.Context, gen Generator, prompt string) (Session, Result, error) {
	if reason := s.validate(prompt); reason != nil {
		return s, s.result(KindValidationError, reason, ""), nil
	}

	dialogue := make([]string, len(s.Dialogue), len(s.Dialogue)+2)
	copy(dialogue, s.Dialogue)
	dialogue = append(dialogue, prompt)

	raw, err := gen.Generate(ctx, ContextWindow(dialogue))
	if err != nil {
		return s, Result{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	continuation := Sanitize(raw)

	next := s
	next.Dialogue = append(dialogue, continuation)
	next.Turns++
	kind := KindTurnApplied
	if s.Target != "" && strings.Contains(continuation, s.Target) {
		next.Won = true
		kind = KindGameWon
	}
	return next, next.result(kind, nil, continuation), nil
}

func (s Session) validate(prompt string) error {
	switch {
	case s.Won:
		return ErrGameOver
	case len(strings.Fields(prompt)) > MaxPromptWords:
		return ErrPromptTooLong
	case s.Target != "" && strings.Contains(prompt, s.Target):
		return ErrForbiddenWord
	}
	return nil
}

func (s Session) result(kind Kind, reason error, continuation string) Result {
	return Result{
		Kind:         kind,
		Reason:       reason,
		Continuation: continuation,
		Dialogue:     Label(s.Dialogue),
		Turns:        s.Turns,
		Won:          s.Won,
	}
}

// State reports "won" or "in_progress".
func (s Session) State() string {
	if s.Won {
		return "won"
	}
	return "in_progress"
}

// Label tags each dialogue entry: even indexes are the player, odd the generator.
func Label(dialogue []string) []Entry {
	out := make([]Entry, len(dialogue))
	for i, text := range dialogue {
		sp := SpeakerPlayer
		if i%2 == 1 {
			sp = SpeakerGenerator
		}
		out[i] = Entry{Text: text, Speaker: sp}
	}
	return out
}

// ContextWindow joins the dialogue and keeps its last ContextWords tokens.
func ContextWindow(dialogue []string) string {
	tokens := strings.Fields(strings.Join(dialogue, " "))
	if len(tokens) > ContextWords {
		tokens = tokens[len(tokens)-ContextWords:]
	}
	return strings.Join(tokens, " ")
}

// Sanitize removes line breaks from a generated continuation.
func Sanitize(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
