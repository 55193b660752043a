package campaign

import "fmt"

// Decision is the outcome of an owner authorization check.
type Decision int

const (
	// Allowed means the caller signed and is the stored owner.
	Allowed Decision = iota
	// DeniedSignature means the caller did not sign the invocation.
	DeniedSignature
	// DeniedUninitialized means there is no owner to compare against.
	DeniedUninitialized
	// DeniedNotOwner means the caller signed but is not the owner.
	DeniedNotOwner
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedSignature:
		return "denied_signature"
	case DeniedUninitialized:
		return "denied_uninitialized"
	case DeniedNotOwner:
		return "denied_not_owner"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Authorization is the typed result of authorizeOwner. Owner-gated
// operations consume it before touching state.
type Authorization struct {
	Caller   Address
	Owner    Address
	Decision Decision
	cause    error
}

// Allowed reports whether the operation may proceed.
func (a Authorization) Allowed() bool { return a.Decision == Allowed }

// Err converts a denial into the engine error to return.
func (a Authorization) Err() error {
	switch a.Decision {
	case Allowed:
		return nil
	case DeniedSignature:
		return fmt.Errorf("%w: %w", ErrUnauthorized, a.cause)
	case DeniedUninitialized:
		return ErrNotInitialized
	default:
		return fmt.Errorf("%w: %s is not the campaign owner", ErrUnauthorized, a.Caller)
	}
}

// authorizeOwner checks that caller signed the invocation and matches the
// stored owner, in that order.
func authorizeOwner(auth Authenticator, s *State, caller Address) Authorization {
	a := Authorization{Caller: caller, Owner: s.Owner}
	if err := auth.RequireAuth(caller); err != nil {
		a.Decision = DeniedSignature
		a.cause = err
		return a
	}
	if !s.Initialized {
		a.Decision = DeniedUninitialized
		return a
	}
	if caller != s.Owner {
		a.Decision = DeniedNotOwner
		return a
	}
	a.Decision = Allowed
	return a
}

// requireSigner wraps a host auth failure as ErrUnauthorized.
func requireSigner(auth Authenticator, addr Address) error {
	if err := auth.RequireAuth(addr); err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return nil
}
