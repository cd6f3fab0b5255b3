// internal/game/types.go
//
// Core type definitions for the GPT Golf game engine.
// Defines:
//   - Session: state for one playthrough (target, dialogue, turn count, win flag).
//   - Speaker/Entry: dialogue entries tagged by who produced them.
//   - Kind/Result: the enumerated outcome of a submitted turn.
//   - Generator: the external text-generation collaborator.

package game

import (
	"context"
	"errors"
	"time"
)

// Speaker identifies who produced a dialogue entry.
type Speaker string

const (
	SpeakerPlayer    Speaker = "player"
	SpeakerGenerator Speaker = "generator"
)

// Mode selects how the target word was chosen.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeDaily  Mode = "daily"
)

// Entry is a single dialogue line with its speaker.
type Entry struct {
	Text    string  `json:"text"`
	Speaker Speaker `json:"speaker"`
}

// Session holds the state of a single game.
// Sessions are values: SubmitTurn returns the next state and never mutates its receiver.
type Session struct {
	ID        string    // Unique session identifier (uuid).
	Target    string    // The word the player tries to elicit; fixed for the session.
	Mode      Mode      // normal | daily
	Date      string    // Daily date key (YYYY-MM-DD); empty in normal mode.
	Dialogue  []string  // Alternating player/generator entries, append-only.
	Turns     int       // Completed turns; always len(Dialogue)/2.
	Won       bool      // Set once the generator says the target; terminal.
	StartedAt time.Time // Session creation time (UTC).
}

// Kind enumerates turn outcomes.
type Kind string

const (
	KindValidationError Kind = "validation_error"
	KindTurnApplied     Kind = "turn_applied"
	KindGameWon         Kind = "game_won"
)

// Result describes what a turn did.
// For KindValidationError, Reason holds one of the validation sentinels and
// the remaining fields reflect the unchanged session.
type Result struct {
	Kind         Kind
	Reason       error
	Continuation string
	Dialogue     []Entry
	Turns        int
	Won          bool
}

// Validation failures. They are reported through Result.Reason, never as the
// error return of SubmitTurn.
var (
	ErrPromptTooLong = errors.New("prompt must be a maximum of 5 words")
	ErrForbiddenWord = errors.New("you can't use the target word in the prompt")
	ErrGameOver      = errors.New("game already won")
)

// ErrGeneration wraps failures of the text-generation service.
var ErrGeneration = errors.New("generation failed")

// Generator produces one continuation for a text context.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
