// internal/words/words.go
//
// Target word source for GPT Golf.
//
// Responsibilities:
//   - Load the candidate target words from a configured file, or fall back to
//     the list embedded in the assets package.
//   - Normalise entries (trimmed, lowercase, alphabetic only, no duplicates).
//   - Pick targets uniformly at random.
//
// File formats (WORDLIST_FILE):
//   • *.json: a JSON array of strings.
//   • anything else: one word per line; blank lines and "#" comments skipped.

package words

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/robalobadob/gptgolf/assets"
)

// ErrEmpty is returned when a list has no usable words.
var ErrEmpty = errors.New("words: list is empty")

// Source is an immutable set of candidate target words.
type Source struct {
	list []string
	set  map[string]struct{}
}

// Load reads path if set, otherwise the embedded default list.
func Load(path string) (*Source, error) {
	if path == "" {
		raw, err := assets.Wordlist()
		if err != nil {
			return nil, fmt.Errorf("words: embedded list: %w", err)
		}
		return parseJSON(raw)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSON(raw)
	}
	return parseLines(raw)
}

// New builds a Source from an in-memory list.
func New(list []string) (*Source, error) {
	s := &Source{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := s.set[w]; dup {
			continue
		}
		s.set[w] = struct{}{}
		s.list = append(s.list, w)
	}
	if len(s.list) == 0 {
		return nil, ErrEmpty
	}
	return s, nil
}

func parseJSON(raw []byte) (*Source, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("words: decode json: %w", err)
	}
	return New(list)
}

func parseLines(raw []byte) (*Source, error) {
	var list []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	return New(list)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random word from the list.
func (s *Source) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.list))))
	if err != nil {
		return s.list[0]
	}
	return s.list[n.Int64()]
}

// At returns the word at index i modulo the list length.
func (s *Source) At(i int) string {
	if i < 0 {
		i = -i
	}
	return s.list[i%len(s.list)]
}

// Contains reports whether w is a candidate target.
func (s *Source) Contains(w string) bool {
	_, ok := s.set[strings.ToLower(w)]
	return ok
}

// Count returns the number of loaded words.
func (s *Source) Count() int { return len(s.list) }
