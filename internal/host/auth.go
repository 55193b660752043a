package host

import (
	"errors"
	"fmt"
	"slices"

	"ezcrow.dev/crowdfund/internal/campaign"
)

// ErrMissingSignature is returned when an address did not sign the invocation.
var ErrMissingSignature = errors.New("missing signature")

// SignerSet is the fixed set of addresses that authorized an invocation.
type SignerSet struct {
	signers []campaign.Address
}

var _ campaign.Authenticator = SignerSet{}

// NewSignerSet creates a SignerSet. Duplicates are removed.
func NewSignerSet(addrs ...campaign.Address) SignerSet {
	s := slices.Clone(addrs)
	slices.Sort(s)
	return SignerSet{signers: slices.Compact(s)}
}

// RequireAuth fails with ErrMissingSignature unless addr is a signer.
func (s SignerSet) RequireAuth(addr campaign.Address) error {
	if _, ok := slices.BinarySearch(s.signers, addr); !ok {
		return fmt.Errorf("%w: %s", ErrMissingSignature, addr)
	}
	return nil
}

// Signers returns the sorted signer addresses.
func (s SignerSet) Signers() []campaign.Address {
	return slices.Clone(s.signers)
}
