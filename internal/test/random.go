package test

import (
	"math/rand/v2"
	"strings"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomDraftKey returns a recovery key such as "order-draft-k3x9q" with a suffix of
// n random characters. Keys never collide with the default draft key.
func RandomDraftKey(n int) string {
	if n <= 0 {
		n = 1
	}
	var b strings.Builder
	b.WriteString("order-draft-")
	for range n {
		b.WriteByte(keyAlphabet[rand.IntN(len(keyAlphabet))])
	}
	return b.String()
}
