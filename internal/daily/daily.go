// apps/go-server/internal/daily/daily.go
//
// Deterministic daily puzzle selection.
// Everyone playing on the same UTC date gets the same starting layout:
// the layout is shuffled from Seed(date, salt), which is an HMAC of the date.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic seed for a date key using HMAC-SHA256(salt, date).
func Seed(date, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(date))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a shuffle seed
	return binary.BigEndian.Uint64(sum[:8])
}

// Initializer returns the puzzle initializer for a date key.
func Initializer(date, salt string) game.Initializer {
	return game.NewSeededInitializer(Seed(date, salt))
}
