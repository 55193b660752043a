package host

import (
	"context"
	"fmt"
	"strings"

	"ezcrow.dev/crowdfund/internal/campaign"
)

// Key namespaces inside a backend.
const (
	contractNamespace = "contract"
	tokenNamespace    = "token"
)

// ContractPrefix returns the key prefix of a contract's instance storage.
func ContractPrefix(id campaign.Address) string {
	return fmt.Sprintf("%s/%s/", contractNamespace, id)
}

// TokenPrefix returns the key prefix of an asset's ledger.
func TokenPrefix(asset campaign.Address) string {
	return fmt.Sprintf("%s/%s/", tokenNamespace, asset)
}

// prefixStorage scopes a transaction to one key prefix.
type prefixStorage struct {
	tx     Tx
	prefix string
}

var _ campaign.Storage = (*prefixStorage)(nil)

func newPrefixStorage(tx Tx, prefix string) *prefixStorage {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &prefixStorage{tx: tx, prefix: prefix}
}

func (s *prefixStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.tx.Get(ctx, s.prefix+key)
}

func (s *prefixStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.tx.Set(ctx, s.prefix+key, value)
}
