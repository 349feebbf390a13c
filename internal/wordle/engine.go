// internal/wordle/engine.go
//
// Scoring for the guess service.
// Responsibilities:
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Fold per-letter marks into the position lists carried by GuessScored.

package wordle

import "github.com/robalobadob/wordle/apps/game-session/internal/actor"

// scoreGuess implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non‑hit) answer letters.
//
// Pass 2:
//   - For each non‑hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Miss.
//
// Both inputs must be validated a–z words of equal length.
func scoreGuess(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// scored builds the reply for a guess from its marks.
func scored(user actor.ID, word string, marks []Mark) GuessScored {
	ev := GuessScored{
		User:             user,
		Word:             word,
		CorrectPositions: []int{},
		ContainedInWord:  []int{},
	}
	for i, m := range marks {
		switch m {
		case MarkHit:
			ev.CorrectPositions = append(ev.CorrectPositions, i)
		case MarkPresent:
			ev.ContainedInWord = append(ev.ContainedInWord, i)
		}
	}
	return ev
}
