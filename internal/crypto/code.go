package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

var codeSpan = big.NewInt(codeMax - codeMin + 1)

// randomCodeGenerator draws codes from a CSPRNG.
type randomCodeGenerator struct {
	source io.Reader
}

// NewCodeGenerator returns a [CodeGenerator] reading from crypto/rand.
func NewCodeGenerator() CodeGenerator {
	return &randomCodeGenerator{source: rand.Reader}
}

// Generate implements [CodeGenerator].
func (g *randomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(g.source, codeSpan)
	if err != nil {
		return "", fmt.Errorf("error reading random source: %w", err)
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
