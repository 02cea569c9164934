// Package resolveid generates time-sortable identifiers for resolution
// audit trails. An ID is a UUIDv7 encoded as 26 characters of Crockford
// base32, so lexical order matches creation order.
package resolveid

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// Generator produces resolution IDs. The zero value is not usable;
// construct with New or NewDeterministic.
type Generator struct {
	now     func() time.Time
	entropy io.Reader
}

// New returns a generator backed by the system clock and crypto/rand
func New() *Generator {
	return &Generator{now: time.Now, entropy: crand.Reader}
}

// NewDeterministic returns a generator with an injected clock and
// entropy source for reproducible IDs in tests
func NewDeterministic(now func() time.Time, entropy io.Reader) *Generator {
	return &Generator{now: now, entropy: entropy}
}

// Generate returns a fresh resolution ID
func (g *Generator) Generate() (string, error) {
	var uuid [16]byte

	ms := g.now().UnixMilli()
	uuid[0] = byte(ms >> 40)
	uuid[1] = byte(ms >> 32)
	uuid[2] = byte(ms >> 24)
	uuid[3] = byte(ms >> 16)
	uuid[4] = byte(ms >> 8)
	uuid[5] = byte(ms)

	if _, err := io.ReadFull(g.entropy, uuid[6:]); err != nil {
		return "", fmt.Errorf("resolveid: entropy read failed: %w", err)
	}

	// version 7, variant 10
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid), nil
}

// Validate reports whether s has the shape of a resolution ID
func Validate(s string) error {
	if len(s) != encodedLen {
		return fmt.Errorf("resolveid: want %d characters, got %d", encodedLen, len(s))
	}
	// 130 bits of base32 hold 128 bits of UUID, so the leading
	// character only ranges over 0-7
	if s[0] > '7' {
		return fmt.Errorf("resolveid: leading character %q out of range", s[0])
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return fmt.Errorf("resolveid: invalid character %q at position %d", s[i], i)
		}
	}
	return nil
}

// encodeBase32 packs 128 bits into 26 base32 characters, five bits at a time
func encodeBase32(data [16]byte) string {
	result := make([]byte, encodedLen)
	for i := 0; i < encodedLen; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < len(data) {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < len(data) {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}
