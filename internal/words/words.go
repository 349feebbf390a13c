// internal/words/words.go
//
// Answer list management for the guess service.
//
// Responsibilities:
//   - Load answers from a file or fall back to the embedded assets list.
//   - Normalize entries (trim, lowercase, keep only 5-letter a–z words,
//     drop duplicates).
//   - Supply RandomAnswer, Contains and At for answer selection.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • An empty list is an error; the service cannot open rounds without
//     answers.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/game-session/assets"
)

// WordLen is the length of every word in a list.
const WordLen = 5

// ErrEmpty is returned when no valid word survives normalization.
var ErrEmpty = errors.New("words: answers list is empty")

// List is an immutable, normalized answer list.
type List struct {
	answers []string
	set     map[string]struct{}
}

// Load reads answers from path, one word per line. An empty path selects
// the embedded default list.
func Load(path string) (*List, error) {
	if path == "" {
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, fmt.Errorf("read embedded answers: %w", err)
		}
		return New(raw)
	}
	raw, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(raw)
}

// New builds a List from raw entries.
func New(raw []string) (*List, error) {
	l := &List{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if !Valid(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.answers = append(l.answers, w)
	}
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one entry per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Valid reports whether w is exactly WordLen lowercase ASCII letters.
func Valid(w string) bool {
	if len(w) != WordLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Len returns the number of answers.
func (l *List) Len() int { return len(l.answers) }

// At returns the answer at index i modulo the list length.
func (l *List) At(i int) string {
	if i < 0 {
		i = -i
	}
	return l.answers[i%len(l.answers)]
}

// Contains reports whether w is an answer.
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// RandomAnswer returns a cryptographically random answer.
func (l *List) RandomAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}
