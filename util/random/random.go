// Package random generates random tokens from crypto/rand.
package random

import (
	"crypto/rand"
	"math/big"
)

var alphanum [62]rune

func init() {
	for i := 0; i < 10; i++ {
		alphanum[i] = rune('0' + i)
	}
	for i := 0; i < 26; i++ {
		alphanum[10+i] = rune('a' + i)
		alphanum[36+i] = rune('A' + i)
	}
}

// Seq returns a random alphanumeric string of length n. Used for session
// tokens, so it panics rather than degrade if the system randomness source
// fails.
func Seq(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanum))))
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		runes[i] = alphanum[idx.Int64()]
	}
	return string(runes)
}
