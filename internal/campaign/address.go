package campaign

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidAddress is returned by ParseAddress for malformed input.
var ErrInvalidAddress = errors.New("invalid address")

// Address identifies an account (G...) or a contract (C...) in StrKey form.
type Address string

var addressPattern = regexp.MustCompile(`^[GC][A-Z2-7]{55}$`)

// ParseAddress validates the shape of a StrKey address.
// Checksums are the host's concern and are not verified here.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !addressPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address(s), nil
}

// IsContract reports whether the address names a contract.
func (a Address) IsContract() bool {
	return strings.HasPrefix(string(a), "C")
}

func (a Address) String() string { return string(a) }
