package enc

// NOTE: The alphabet is taken from base128.c of the IODINE project.
/*
 * Copyright (c) 2006-2014 Erik Ekman <yarrick@kryo.se>,
 * 2006-2009 Bjorn Andersson <flex@kryo.se>
 * Mostly rewritten 2009 J.A.Bezemer@opensourcepartners.nl
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

import (
	"fmt"
	"sync"

	"go.chromium.org/luci/common/data/base128"
)

const (

	/*
	 * Don't use '-' (restricted to middle of labels), prefer iso_8859-1
	 * accent chars since they might readily be entered in normal use,
	 * don't use 254-255 because of possible function overloading in DNS systems.
	 */
	cb128 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"\274\275\276\277" +
		"\300\301\302\303\304\305\306\307\310\311\312\313\314\315\316\317" +
		"\320\321\322\323\324\325\326\327\330\331\332\333\334\335\336\337" +
		"\340\341\342\343\344\345\346\347\350\351\352\353\354\355\356\357" +
		"\360\361\362\363\364\365\366\367\370\371\372\373\374\375"
)

var cb128Invert [256]int16
var cb128Initialized sync.Once

func setupCb128Invert() {
	cb128Initialized.Do(func() {
		for i := range cb128Invert {
			cb128Invert[i] = -1
		}
		for i, v := range []byte(cb128) {
			cb128Invert[v] = int16(i)
		}
	})
}

// -------------------------------------------------------

// Base128Encoder encodes 7 bytes to 8 characters. The characters are not ASCII: the top half of the alphabet
// is taken from ISO-8859-1.
type Base128Encoder struct {
}

func (b *Base128Encoder) Name() string {
	return "Base128"
}

func (b *Base128Encoder) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *Base128Encoder) Code() byte {
	return 'V'
}

// base128EncodedLen returns the number of 7-bit symbols needed for n bytes
func base128EncodedLen(n int) int {
	return (n*8 + 6) / 7
}

func (b *Base128Encoder) Encode(src []byte) []byte {
	if src == nil {
		return nil
	}

	dst := make([]byte, 0, base128EncodedLen(len(src)))

	// Bits are collected MSB first. At most 7+8 bits are ever pending.
	var acc uint16
	bits := uint(0)
	for _, val := range src {
		acc = acc<<8 | uint16(val)
		bits += 8
		for bits >= 7 {
			bits -= 7
			dst = append(dst, cb128[(acc>>bits)&0x7f])
		}
		acc &= (1 << bits) - 1
	}

	// Left-align the remaining bits in the last symbol
	if bits > 0 {
		dst = append(dst, cb128[(acc<<(7-bits))&0x7f])
	}
	return dst
}

func (b *Base128Encoder) EncodeToString(src []byte) string {
	return string(b.Encode(src))
}

// Decode maps the symbols back to their 7-bit values and unpacks them. A symbol count of 8n+1 leaves a
// dangling symbol which carries no complete byte and is rejected.
func (b *Base128Encoder) Decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	if len(src) == 0 {
		return []byte{}, nil
	}
	setupCb128Invert()

	values := make([]byte, len(src))
	for i, c := range src {
		v := cb128Invert[c]
		if v < 0 {
			return nil, invalidCharacter(c, int64(i))
		}
		values[i] = byte(v)
	}

	if len(values)%8 == 1 {
		return nil, malformedInput("length %d leaves a dangling character", len(src))
	}

	dst, err := base128.DecodeString(string(values))
	if err != nil {
		return nil, malformedInput("could not decode base128 (%d characters): %v", len(src), err)
	}
	return dst, nil
}

func (b *Base128Encoder) DecodeString(src string) ([]byte, error) {
	return b.Decode([]byte(src))
}

func (b *Base128Encoder) Ratio() float64 {
	return 8.0 / 7.0
}
