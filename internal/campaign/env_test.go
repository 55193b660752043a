package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

var (
	errNotSigned      = errors.New("missing signature")
	errBalanceTooLow  = errors.New("insufficient balance")
	errStorageOffline = errors.New("storage offline")
)

// testAddress pads tag to a 56 character StrKey-shaped address.
func testAddress(kind byte, tag string) Address {
	s := string(kind) + strings.ToUpper(tag)
	return Address(s + strings.Repeat("A", 56-len(s)))
}

var (
	owner    = testAddress('G', "OWNER")
	alice    = testAddress('G', "ALICE")
	bob      = testAddress('G', "BOB")
	mallory  = testAddress('G', "MALLORY")
	token    = testAddress('C', "TOKEN")
	contract = testAddress('C', "CROWDFUND")
)

// fakeEnv is an in-memory Env with direct writes and a simple token.
type fakeEnv struct {
	data     map[string][]byte
	signers  map[Address]bool
	now      uint64
	balances map[Address]amount.Int
	failGet  bool
	sets     int
}

func newFakeEnv(now uint64, signers ...Address) *fakeEnv {
	e := &fakeEnv{
		data:     map[string][]byte{},
		signers:  map[Address]bool{},
		now:      now,
		balances: map[Address]amount.Int{},
	}
	e.sign(signers...)
	return e
}

func (e *fakeEnv) sign(addrs ...Address) *fakeEnv {
	e.signers = map[Address]bool{}
	for _, a := range addrs {
		e.signers[a] = true
	}
	return e
}

func (e *fakeEnv) fund(a Address, n int64) { e.balances[a] = amount.New(n) }

func (e *fakeEnv) snapshot() map[string]string {
	out := make(map[string]string, len(e.data))
	for k, v := range e.data {
		out[k] = string(v)
	}
	return out
}

func (e *fakeEnv) Storage() Storage { return (*fakeStorage)(e) }
func (e *fakeEnv) Auth() Authenticator { return (*fakeAuth)(e) }
func (e *fakeEnv) Ledger() Ledger { return (*fakeLedger)(e) }
func (e *fakeEnv) Token(Address) TokenClient { return (*fakeToken)(e) }
func (e *fakeEnv) CurrentContractAddress() Address { return contract }

type fakeStorage fakeEnv

func (s *fakeStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.failGet {
		return nil, false, errStorageOffline
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStorage) Set(_ context.Context, key string, value []byte) error {
	s.sets++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeAuth fakeEnv

func (a *fakeAuth) RequireAuth(addr Address) error {
	if !a.signers[addr] {
		return fmt.Errorf("%w: %s", errNotSigned, addr)
	}
	return nil
}

type fakeLedger fakeEnv

func (l *fakeLedger) Timestamp() uint64 { return l.now }

type fakeToken fakeEnv

func (t *fakeToken) Transfer(_ context.Context, from, to Address, amt amount.Int) error {
	left, err := t.balances[from].Sub(amt)
	if err != nil || left.Sign() < 0 {
		return errBalanceTooLow
	}
	in, err := t.balances[to].Add(amt)
	if err != nil {
		return err
	}
	t.balances[from] = left
	t.balances[to] = in
	return nil
}
