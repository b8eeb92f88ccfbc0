package draw

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source yields uniform integers in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Int63n(n int64) int64
}

// cryptoSource draws from crypto/rand so production draws cannot be
// predicted from a seed.
type cryptoSource struct{}

func (cryptoSource) Int63n(n int64) int64 {
	if n <= 0 {
		panic("draw: invalid argument to Int63n")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic("draw: crypto source failed: " + err.Error())
	}
	return v.Int64()
}

// CryptoSource returns the default Source backed by crypto/rand.
func CryptoSource() Source { return cryptoSource{} }

// SeededSource returns a reproducible Source for audits and tests.
func SeededSource(seed int64) Source {
	return mrand.New(mrand.NewSource(seed)) //nolint:gosec // audit source, not for production draws
}
