// internal/daily/daily.go
//
// UTC calendar days for the daily answer mode.
// Responsibilities:
//   - Normalize any instant or "YYYY-MM-DD" string to a UTC Day.
//   - Derive the day's answer index with HMAC(salt, day), so every player
//     gets the same word and the index cannot be guessed without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

const layout = "2006-01-02"

var ErrBadDay = errors.New("daily: day must be YYYY-MM-DD")

// Day is a UTC calendar day; its zero value is not a valid day.
type Day struct{ key string }

// On returns the UTC day containing t.
func On(t time.Time) Day { return Day{key: t.UTC().Format(layout)} }

// Parse reads a "YYYY-MM-DD" key.
func Parse(key string) (Day, error) {
	t, err := time.Parse(layout, key)
	if err != nil {
		return Day{}, ErrBadDay
	}
	return On(t), nil
}

// String returns the "YYYY-MM-DD" key, the prefix of RFC3339 timestamps
// recorded that day.
func (d Day) String() string { return d.key }

// Index picks one of n answers for the day. It returns 0 when n <= 0.
func (d Day) Index(salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(d.key))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)[:8]) % uint64(n))
}
