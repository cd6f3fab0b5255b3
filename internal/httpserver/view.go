// internal/httpserver/view.go
//
// Maps game results onto the widgets of the game page. The engine only
// reports what happened (game.Result); this file decides which fields the
// client shows, hides or resets.

package httpserver

import (
	"github.com/robalobadob/gptgolf/internal/game"
)

// Widget names understood by the web client.
const (
	uiStart     = "start"    // start button
	uiGame      = "game"     // game column
	uiTarget    = "target"   // target word box
	uiTurns     = "turns"    // turn counter
	uiDialogue  = "dialogue" // highlighted dialogue
	uiPromptSet = "promptSet"
	uiPrompt    = "prompt"
	uiWin       = "win"
	uiError     = "error"
)

// directive is a single widget update. Nil fields mean "leave as is".
type directive struct {
	Visible *bool `json:"visible,omitempty"`
	Value   any   `json:"value,omitempty"`
}

func visible(v bool) directive { return directive{Visible: &v} }

func show() directive { return visible(true) }
func hide() directive { return visible(false) }
func set(value any) directive { return directive{Value: value} }

func showWith(value any) directive {
	d := show()
	d.Value = value
	return d
}

// sessionView is the JSON shape returned for every game response.
type sessionView struct {
	GameID   string               `json:"gameId"`
	Mode     game.Mode            `json:"mode"`
	Date     string               `json:"date,omitempty"`
	Target   string               `json:"targetWord"`
	Kind     game.Kind            `json:"kind,omitempty"`
	Dialogue []game.Entry         `json:"dialogue"`
	Turns    int                  `json:"turns"`
	Won      bool                 `json:"won"`
	State    string               `json:"state"`
	Error    string               `json:"error,omitempty"`
	UI       map[string]directive `json:"ui"`
}

func baseView(s game.Session) sessionView {
	return sessionView{
		GameID:   s.ID,
		Mode:     s.Mode,
		Date:     s.Date,
		Target:   s.Target,
		Dialogue: game.Label(s.Dialogue),
		Turns:    s.Turns,
		Won:      s.Won,
		State:    s.State(),
		UI:       map[string]directive{},
	}
}

// startView is returned by /game/new.
func startView(s game.Session) sessionView {
	v := baseView(s)
	v.UI[uiStart] = hide()
	v.UI[uiGame] = show()
	v.UI[uiTarget] = set(s.Target)
	v.UI[uiTurns] = set(s.Turns)
	v.UI[uiDialogue] = set(v.Dialogue)
	v.UI[uiError] = hide()
	if s.Won {
		v.UI[uiPromptSet] = hide()
		v.UI[uiWin] = show()
	}
	return v
}

// turnView is returned by /game/turn.
func turnView(s game.Session, res game.Result) sessionView {
	v := baseView(s)
	v.Kind = res.Kind
	v.Dialogue = res.Dialogue
	v.Turns = res.Turns
	v.Won = res.Won

	switch res.Kind {
	case game.KindValidationError:
		v.Error = res.Reason.Error()
		v.UI[uiError] = showWith(capitalize(v.Error) + "!")
	case game.KindGameWon:
		v.UI[uiDialogue] = set(v.Dialogue)
		v.UI[uiTurns] = set(v.Turns)
		v.UI[uiPromptSet] = hide()
		v.UI[uiWin] = show()
		v.UI[uiError] = hide()
	case game.KindTurnApplied:
		v.UI[uiDialogue] = set(v.Dialogue)
		v.UI[uiTurns] = set(v.Turns)
		v.UI[uiPrompt] = set("")
		v.UI[uiError] = hide()
	}
	return v
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
