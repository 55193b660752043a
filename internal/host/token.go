package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// Token ledger errors.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeAmount      = errors.New("negative amount")
)

const supplyKey = "supply"

func balanceKey(addr campaign.Address) string { return "balance/" + string(addr) }

// TokenLedger holds balances of one asset inside the invocation's
// transaction, so transfers commit or roll back with the contract.
type TokenLedger struct {
	asset   campaign.Address
	storage *prefixStorage
	auth    campaign.Authenticator
}

var _ campaign.TokenClient = (*TokenLedger)(nil)

// Asset returns the asset address.
func (l *TokenLedger) Asset() campaign.Address { return l.asset }

// Balance returns addr's balance, 0 when never funded.
func (l *TokenLedger) Balance(ctx context.Context, addr campaign.Address) (amount.Int, error) {
	return l.read(ctx, balanceKey(addr))
}

// Supply returns the total amount minted.
func (l *TokenLedger) Supply(ctx context.Context) (amount.Int, error) {
	return l.read(ctx, supplyKey)
}

// Transfer moves amt from one address to another. from must have signed.
func (l *TokenLedger) Transfer(ctx context.Context, from, to campaign.Address, amt amount.Int) error {
	if amt.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amt)
	}
	if err := l.auth.RequireAuth(from); err != nil {
		return err
	}
	fromBal, err := l.Balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amt) < 0 {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance, from, fromBal, amt)
	}
	if from == to {
		return nil
	}
	toBal, err := l.Balance(ctx, to)
	if err != nil {
		return err
	}
	newTo, err := toBal.Add(amt)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	newFrom, err := fromBal.Sub(amt)
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if err := l.write(ctx, balanceKey(from), newFrom); err != nil {
		return err
	}
	return l.write(ctx, balanceKey(to), newTo)
}

// Mint creates amt new units for to. Callers gate access.
func (l *TokenLedger) Mint(ctx context.Context, to campaign.Address, amt amount.Int) (amount.Int, error) {
	if amt.Sign() < 0 {
		return amount.Zero, fmt.Errorf("%w: %s", ErrNegativeAmount, amt)
	}
	supply, err := l.Supply(ctx)
	if err != nil {
		return amount.Zero, err
	}
	newSupply, err := supply.Add(amt)
	if err != nil {
		return amount.Zero, fmt.Errorf("supply: %w", err)
	}
	bal, err := l.Balance(ctx, to)
	if err != nil {
		return amount.Zero, err
	}
	newBal, err := bal.Add(amt)
	if err != nil {
		return amount.Zero, fmt.Errorf("credit %s: %w", to, err)
	}
	if err := l.write(ctx, supplyKey, newSupply); err != nil {
		return amount.Zero, err
	}
	if err := l.write(ctx, balanceKey(to), newBal); err != nil {
		return amount.Zero, err
	}
	return newBal, nil
}

func (l *TokenLedger) read(ctx context.Context, key string) (amount.Int, error) {
	raw, ok, err := l.storage.Get(ctx, key)
	if err != nil || !ok {
		return amount.Zero, err
	}
	var v amount.Int
	if err := json.Unmarshal(raw, &v); err != nil {
		return amount.Zero, fmt.Errorf("decode %s of %s: %w", key, l.asset, err)
	}
	return v, nil
}

func (l *TokenLedger) write(ctx context.Context, key string, v amount.Int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.storage.Set(ctx, key, raw)
}
