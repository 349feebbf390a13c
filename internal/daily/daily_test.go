package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-03-01", On(time.Date(2026, 3, 2, 5, 0, 0, 0, loc)).String())
}

func TestParse(t *testing.T) {
	d, err := Parse("2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, On(time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)), d)

	for _, bad := range []string{"", "yesterday", "2026-13-01", "17-10-2026"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrBadDay, bad)
	}
}

func TestIndexDeterministic(t *testing.T) {
	noon := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	a := On(noon).Index("salt", 100)
	assert.Equal(t, a, On(noon.Add(time.Hour)).Index("salt", 100))
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 100)
	assert.Zero(t, On(noon).Index("salt", 0))

	// A different salt or day moves the index for at least one of a handful of days.
	moved := false
	for i := 0; i < 5 && !moved; i++ {
		d := On(noon.AddDate(0, 0, i))
		moved = d.Index("salt", 1000) != d.Index("pepper", 1000)
	}
	assert.True(t, moved)
}
