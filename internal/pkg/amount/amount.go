// Package amount implements signed 128-bit asset amounts.
//
// Values are immutable. Arithmetic is checked: any result outside
// [-2^127, 2^127-1] is reported as ErrOverflow instead of wrapping.
//
// Import Path: ezcrow.dev/crowdfund/internal/pkg/amount
package amount

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// ErrOverflow is returned when a result does not fit in 128 signed bits.
var ErrOverflow = errors.New("amount overflows int128")

// ErrSyntax is returned when a decimal string cannot be parsed.
var ErrSyntax = errors.New("invalid amount syntax")

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Int is a signed 128-bit integer. The zero value is 0.
type Int struct {
	v *big.Int
}

// Zero is the zero amount.
var Zero = Int{}

// New returns an Int holding n.
func New(n int64) Int {
	if n == 0 {
		return Int{}
	}
	return Int{v: big.NewInt(n)}
}

// Max returns the largest representable amount.
func Max() Int { return Int{v: new(big.Int).Set(maxInt128)} }

// Min returns the smallest representable amount.
func Min() Int { return Int{v: new(big.Int).Set(minInt128)} }

// Parse reads a base-10 integer with an optional sign.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("%w: empty string", ErrSyntax)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return fromBig(v)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Int {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBig converts a big.Int, failing when it exceeds the int128 range.
func FromBig(v *big.Int) (Int, error) {
	if v == nil {
		return Int{}, nil
	}
	return fromBig(new(big.Int).Set(v))
}

func fromBig(v *big.Int) (Int, error) {
	if v.Cmp(maxInt128) > 0 || v.Cmp(minInt128) < 0 {
		return Int{}, ErrOverflow
	}
	if v.Sign() == 0 {
		return Int{}, nil
	}
	return Int{v: v}, nil
}

func (a Int) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Big returns a copy of the value as a big.Int.
func (a Int) Big() *big.Int {
	return new(big.Int).Set(a.big())
}

// Add returns a+b.
func (a Int) Add(b Int) (Int, error) {
	return fromBig(new(big.Int).Add(a.big(), b.big()))
}

// Sub returns a-b.
func (a Int) Sub(b Int) (Int, error) {
	return fromBig(new(big.Int).Sub(a.big(), b.big()))
}

// Mul returns a*b.
func (a Int) Mul(b Int) (Int, error) {
	return fromBig(new(big.Int).Mul(a.big(), b.big()))
}

// Neg returns -a. Negating Min overflows.
func (a Int) Neg() (Int, error) {
	return fromBig(new(big.Int).Neg(a.big()))
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Int) Cmp(b Int) int {
	return a.big().Cmp(b.big())
}

// Sign returns -1, 0 or +1.
func (a Int) Sign() int {
	if a.v == nil {
		return 0
	}
	return a.v.Sign()
}

// IsZero reports whether a == 0.
func (a Int) IsZero() bool { return a.Sign() == 0 }

// Equal reports whether a == b.
func (a Int) Equal(b Int) bool { return a.Cmp(b) == 0 }

// Int64 returns the value and whether it fits in an int64.
func (a Int) Int64() (int64, bool) {
	if a.v == nil {
		return 0, true
	}
	if !a.v.IsInt64() {
		return 0, false
	}
	return a.v.Int64(), true
}

// String returns the base-10 representation.
func (a Int) String() string {
	if a.v == nil {
		return "0"
	}
	return a.v.String()
}

// MarshalText implements encoding.TextMarshaler.
func (a Int) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes the amount as a JSON string so that values beyond
// 2^53 survive JavaScript clients.
func (a Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON integer.
func (a *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Int{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return a.UnmarshalText([]byte(s))
	}
	return a.UnmarshalText(data)
}
