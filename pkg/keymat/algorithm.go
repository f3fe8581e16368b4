package keymat

import (
	"fmt"
	"slices"
	"strings"
)

// Algorithm identifies one of the supported symmetric algorithms.
// The numeric values are stable and used in serialized KeyMaterial.
type Algorithm uint16

const (
	AESCBC       Algorithm = 0x0001
	TripleDESCBC Algorithm = 0x0002
	RC4          Algorithm = 0x0003
	RC2CBC       Algorithm = 0x0004
	MultiXOR     Algorithm = 0x0005
	XTEA         Algorithm = 0x0006
)

type algorithmSpec struct {
	name    string
	aliases []string
	keySize int
	ivSize  int
}

var specs = map[Algorithm]algorithmSpec{
	AESCBC:       {name: "aes-cbc", aliases: []string{"aes"}, keySize: 32, ivSize: 16},
	TripleDESCBC: {name: "3des-cbc", aliases: []string{"3des", "tripledes", "des3"}, keySize: 24, ivSize: 8},
	RC4:          {name: "rc4", aliases: []string{"arc4"}, keySize: 256},
	RC2CBC:       {name: "rc2-cbc", aliases: []string{"rc2"}, keySize: 16, ivSize: 8},
	MultiXOR:     {name: "multi-xor", aliases: []string{"xor"}, keySize: 100},
	XTEA:         {name: "xtea", keySize: 128},
}

// Algorithms lists every supported Algorithm in id order.
func Algorithms() []Algorithm {
	return []Algorithm{AESCBC, TripleDESCBC, RC4, RC2CBC, MultiXOR, XTEA}
}

// Valid reports whether a is a supported Algorithm.
func (a Algorithm) Valid() bool {
	_, ok := specs[a]
	return ok
}

func (a Algorithm) String() string {
	if s, ok := specs[a]; ok {
		return s.name
	}
	return fmt.Sprintf("Algorithm(0x%04x)", uint16(a))
}

// Aliases returns the alternate names accepted by ParseAlgorithm.
func (a Algorithm) Aliases() []string {
	return slices.Clone(specs[a].aliases)
}

// KeySize is the number of key bytes derived for the algorithm.
func (a Algorithm) KeySize() int {
	return specs[a].keySize
}

// IVSize is the number of IV bytes derived for the algorithm, or 0 for algorithms without an IV.
func (a Algorithm) IVSize() int {
	return specs[a].ivSize
}

// ParseAlgorithm looks up an Algorithm by its name or one of its aliases, ignoring case.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, alg := range Algorithms() {
		s := specs[alg]
		if s.name == name || slices.Contains(s.aliases, name) {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnknownAlgorithm, name)
}
