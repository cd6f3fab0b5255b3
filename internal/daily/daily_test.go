package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gptgolf/internal/words"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-10-13", DateKey(time.Date(2026, 10, 14, 5, 0, 0, 0, loc)))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)

	i := Index(day, "salt", 97)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 97)
	assert.Equal(t, i, Index(later, "salt", 97), "same day, same index")
	assert.Zero(t, Index(day, "salt", 0))

	// Different salts should not all agree across a month.
	same := 0
	for d := 0; d < 30; d++ {
		t0 := day.AddDate(0, 0, d)
		if Index(t0, "a", 97) == Index(t0, "b", 97) {
			same++
		}
	}
	assert.Less(t, same, 30)
}

func TestPicker(t *testing.T) {
	src, err := words.New([]string{"ocean", "river", "lake", "storm"})
	require.NoError(t, err)
	p := Picker{Salt: "s", Words: src}

	day := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	date, w := p.Target(day)
	assert.Equal(t, "2026-10-14", date)
	assert.True(t, src.Contains(w))

	_, again := p.Target(day.Add(time.Hour))
	assert.Equal(t, w, again)
}
