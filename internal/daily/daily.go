// Package daily derives the shared target word for a calendar day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index maps a date to a stable position in a list of n words using
// HMAC-SHA256(salt, date). The salt keeps the sequence unguessable.
func Index(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Picker resolves the target word for a day.
type Picker struct {
	Salt  string
	Words interface {
		Count() int
		At(i int) string
	}
}

// Target returns the date key and target word for t.
func (p Picker) Target(t time.Time) (date, word string) {
	date = DateKey(t)
	return date, p.Words.At(Index(t, p.Salt, p.Words.Count()))
}
