package core

import (
	"math/rand"

	"github.com/google/uuid"
)

// Source is the random source the engine draws from.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Read(p []byte) (int, error)
}

// NewSource returns a seeded source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// tokenFactory mints tokens with IDs drawn from the seeded source,
// so a seed reproduces IDs as well as colors.
type tokenFactory struct {
	src Source
}

func (f tokenFactory) make(color Color, special Special) *Token {
	id, err := uuid.NewRandomFromReader(f.src)
	if err != nil {
		id = uuid.New()
	}
	return &Token{ID: id, Color: color, Special: special}
}

// random mints a plain token of a color from the first n palette colors.
func (f tokenFactory) random(n int) *Token {
	return f.make(Color(f.src.Intn(n)), SpecialNone)
}
