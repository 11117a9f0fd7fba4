// Package daily picks a deterministic answer for a calendar date, so that
// "today's word" is the same for every run with the same salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle-solver/internal/words"
)

const dateLayout = "2006-01-02"

// DateKey is the UTC calendar day of t; it names a daily answer.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Answer returns the answer of v for the UTC day of date.
//
// The day key is signed with salt and the first eight bytes of the MAC,
// taken as a big-endian integer, index the answer list. Without the salt the
// sequence of answers cannot be predicted.
func Answer(v *words.Vocabulary, date time.Time, salt string) words.Word {
	answers := v.Answers()
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	n := binary.BigEndian.Uint64(mac.Sum(nil))
	return answers[n%uint64(len(answers))]
}
