package enc

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// CharsetSize is the number of symbols in a 6-bit alphabet
const CharsetSize = 64

// Charset is an immutable alphabet of 64 distinct printable ASCII characters. A character's index in the
// alphabet is the 6-bit value it represents. The reverse lookup is a flat table indexed by the code point,
// so decoding a character is a single array access.
//
// A Charset is never modified after construction and can be shared between goroutines.
type Charset struct {
	symbols [CharsetSize]byte
	lookup  [128]int8
}

// NewCharset validates the alphabet and builds a Charset out of it. The characters are sorted by their code
// point, so the index of a character is its position in the sorted alphabet, not in the given string.
//
// All problems with the alphabet are reported at once: wrong length, characters which are not printable ASCII
// and duplicated characters.
func NewCharset(alphabet string) (*Charset, error) {
	if err := validateAlphabet(alphabet); err != nil {
		return nil, err
	}

	sorted := []byte(alphabet)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	return buildCharset(sorted), nil
}

// newOrderedCharset keeps the order of the given alphabet. It is used for well known alphabets defined as
// constants in this package, so an invalid alphabet is a programming error.
func newOrderedCharset(alphabet string) *Charset {
	if err := validateAlphabet(alphabet); err != nil {
		panic(err)
	}
	return buildCharset([]byte(alphabet))
}

func validateAlphabet(alphabet string) error {
	var errs error

	if len(alphabet) != CharsetSize {
		errs = multierror.Append(errs, errors.Errorf("wrong length: expected %d characters, got %d", CharsetSize, len(alphabet)))
	}

	var seen, reported [256]bool
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c < 0x20 || c > 0x7e {
			errs = multierror.Append(errs, errors.Errorf("character %q at index %d is not printable ASCII", rune(c), i))
			continue
		}
		if seen[c] && !reported[c] {
			errs = multierror.Append(errs, errors.Errorf("duplicate character %q", rune(c)))
			reported[c] = true
		}
		seen[c] = true
	}

	if errs != nil {
		return configurationError(errs, "invalid charset")
	}
	return nil
}

func buildCharset(symbols []byte) *Charset {
	c := &Charset{}
	copy(c.symbols[:], symbols)
	for i := range c.lookup {
		c.lookup[i] = -1
	}
	for i, s := range c.symbols {
		c.lookup[s] = int8(i)
	}
	return c
}

// Symbol returns the character representing the 6-bit value i
func (c *Charset) Symbol(i int) byte {
	return c.symbols[i&(CharsetSize-1)]
}

// Index returns the 6-bit value of the character and true, or -1 and false if the character is not
// part of this alphabet.
func (c *Charset) Index(s byte) (int, bool) {
	if s >= 128 {
		return -1, false
	}
	v := c.lookup[s]
	return int(v), v >= 0
}

// Contains returns true if the character is part of this alphabet
func (c *Charset) Contains(s byte) bool {
	_, ok := c.Index(s)
	return ok
}

// String returns all 64 characters, ordered by their value
func (c *Charset) String() string {
	return string(c.symbols[:])
}
