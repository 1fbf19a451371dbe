package sampling

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the random stream consumed by samplers. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

const (
	SourcePCG      = "pcg"
	SourceChaCha8  = "chacha8"
	SourceSplitMix = "splitmix"
)

// pcg stream selector; fixed so a seed alone determines the sequence.
const pcgStream = 0xda3e39cb94b95bdb

// NewSource builds a seeded generator of the named kind. An empty kind
// selects SourcePCG.
func NewSource(kind string, seed uint64) (*rand.Rand, error) {
	switch kind {
	case "", SourcePCG:
		return rand.New(rand.NewPCG(seed, pcgStream)), nil
	case SourceChaCha8:
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:8], seed)
		return rand.New(rand.NewChaCha8(key)), nil
	case SourceSplitMix:
		s := SplitMix(seed)
		return rand.New(&s), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// Sources lists the generator names accepted by NewSource.
func Sources() []string {
	return []string{SourcePCG, SourceChaCha8, SourceSplitMix}
}

// SplitMix is a splitmix64 generator.
type SplitMix uint64

var _ rand.Source = (*SplitMix)(nil)

func (s *SplitMix) Uint64() uint64 {
	*s += 0x9e3779b97f4a7c15
	x := uint64(*s)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
