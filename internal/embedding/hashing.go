package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// HashingEncoder is a deterministic lexical encoder using feature hashing.
//
// Each lowercase token is hashed into one of a fixed number of buckets with a
// hash-derived sign, and the resulting vector is L2 normalized. It needs no
// model download or network access, which makes it the default for local
// development and the reference encoder in tests. It captures word overlap
// only, not meaning.
type HashingEncoder struct {
	dimensions int
}

// Compile-time check: *HashingEncoder satisfies the Encoder interface.
var _ Encoder = (*HashingEncoder)(nil)

// NewHashingEncoder creates a hashing encoder producing vectors of the given
// size. Non-positive sizes fall back to 384, the all-MiniLM-L6-v2 width.
func NewHashingEncoder(dimensions int) *HashingEncoder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashingEncoder{dimensions: dimensions}
}

// Encode hashes the tokens of text into a normalized vector.
func (h *HashingEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, h.dimensions)
	for _, tok := range tokenize(text) {
		hf := fnv.New64a()
		hf.Write([]byte(tok))
		sum := hf.Sum64()

		idx := int(sum % uint64(h.dimensions))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// Model returns the encoder identifier including its width.
func (h *HashingEncoder) Model() string {
	return "feature-hashing-" + strconv.Itoa(h.dimensions)
}

// tokenize lowercases text and splits it on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
