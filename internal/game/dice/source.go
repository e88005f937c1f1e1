package dice

import (
	"crypto/rand"
	"math/big"
	"sync"
)

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// FixedSource replays a scripted sequence, cycling when exhausted. Each value
// is reduced modulo n. Tests use it to make rolls deterministic.
type FixedSource struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewFixedSource returns a FixedSource replaying values.
//
// Precondition: len(values) > 0 and no value is negative.
func NewFixedSource(values ...int) *FixedSource {
	return &FixedSource{values: values}
}

// Intn implements Source.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	f.mu.Lock()
	v := f.values[f.pos%len(f.values)]
	f.pos++
	f.mu.Unlock()
	return v % n
}
