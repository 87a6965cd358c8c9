package tracking

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Generator mints codes and label identifiers from a random source.
// The zero value is not usable; create one with NewGenerator.
type Generator struct {
	random io.Reader
}

// NewGenerator returns a Generator reading from random, or from crypto/rand when random is nil.
func NewGenerator(random io.Reader) *Generator {
	if random == nil {
		random = rand.Reader
	}
	return &Generator{random: random}
}

var defaultGenerator = NewGenerator(nil)

// Generate mints a code of service using crypto/rand.
func Generate(service ServiceClass) (Code, error) {
	return defaultGenerator.Generate(service)
}

// Generate mints a fresh code: the leading digit of service, uniformly random
// digits, then the check digit. Codes are not unique by construction; storage
// enforces uniqueness and callers re-mint on conflict.
func (g *Generator) Generate(service ServiceClass) (Code, error) {
	spec, err := service.spec()
	if err != nil {
		return Code{}, err
	}

	var b strings.Builder
	b.Grow(spec.digits)
	b.WriteByte(spec.leading)
	for range spec.digits - 2 {
		d, err := g.intn(10)
		if err != nil {
			return Code{}, err
		}
		b.WriteByte(byte('0' + d))
	}

	payload := b.String()
	check, err := Checksum(payload)
	if err != nil {
		return Code{}, err
	}
	return NewCode(payload+string(rune('0'+check)), service)
}

// intn returns a uniform integer in [0, n).
func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random source: %w", err)
	}
	return int(v.Int64()), nil
}
