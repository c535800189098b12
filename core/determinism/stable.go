// Package determinism provides primitives for reproducible output.
// Hashes, map iteration and money formatting used by reports go through here
// so that the same inputs always render byte-identical results.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashJSON hashes the canonical JSON encoding of v.
// encoding/json sorts map keys, so maps hash stably.
func HashJSON(v interface{}) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, err
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, enough to tell reports apart
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// Money represents a monetary amount with full precision.
// NEVER use float64 for money calculations.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates Money from a decimal amount
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String returns formatted money (2 decimal places, grouped thousands)
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, GroupThousands(m.amount.StringFixed(2)))
}

// GroupThousands inserts commas into the integer part of a fixed-point string
func GroupThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	lead := len(intPart) % 3
	if lead > 0 {
		out = append(out, intPart[:lead]...)
	}
	for i := lead; i < len(intPart); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + frac
}

// SortedKeys returns map keys in a stable order
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
