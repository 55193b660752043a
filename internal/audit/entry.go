// Package audit keeps an append-only, hash-chained journal of contract
// invocations.
//
// Each entry commits to the previous entry's hash, so any edit or deletion
// in the middle of the journal is detected by Verify. Retention pruning
// removes a prefix of the chain; the oldest surviving entry becomes the
// new anchor.
//
// Import Path: ezcrow.dev/crowdfund/internal/audit
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrChainBroken is returned by Verify when the chain does not hold.
var ErrChainBroken = errors.New("journal hash chain broken")

// Outcome of an invocation.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Record is what callers submit to the journal.
type Record struct {
	Operation  string
	Caller     string
	Outcome    Outcome
	ErrorCode  string
	LedgerTime uint64
}

// Entry is a sealed journal entry.
type Entry struct {
	Seq        int64     `json:"seq"`
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Caller     string    `json:"caller,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	ErrorCode  string    `json:"error_code,omitempty"`
	LedgerTime uint64    `json:"ledger_time"`
	CreatedAt  time.Time `json:"created_at"`
	PrevHash   string    `json:"prev_hash"`
	Hash       string    `json:"hash"`
}

// hashInput lists the fields covered by the hash, in a fixed order.
type hashInput struct {
	ID         string `json:"id"`
	Operation  string `json:"operation"`
	Caller     string `json:"caller"`
	Outcome    string `json:"outcome"`
	ErrorCode  string `json:"error_code"`
	LedgerTime uint64 `json:"ledger_time"`
	CreatedAt  int64  `json:"created_at_ms"`
	PrevHash   string `json:"prev_hash"`
}

// ChainHash computes the hash of e linked to prevHash.
func ChainHash(e Entry, prevHash string) (string, error) {
	raw, err := json.Marshal(hashInput{
		ID:         e.ID.String(),
		Operation:  e.Operation,
		Caller:     e.Caller,
		Outcome:    string(e.Outcome),
		ErrorCode:  e.ErrorCode,
		LedgerTime: e.LedgerTime,
		CreatedAt:  e.CreatedAt.UTC().UnixMilli(),
		PrevHash:   prevHash,
	})
	if err != nil {
		return "", fmt.Errorf("encode hash input: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// seal links e to prevHash and fills Hash.
func seal(e *Entry, prevHash string) error {
	h, err := ChainHash(*e, prevHash)
	if err != nil {
		return err
	}
	e.PrevHash = prevHash
	e.Hash = h
	return nil
}

// newEntry builds an unsealed entry for rec.
func newEntry(rec Record, now time.Time) (Entry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("generate entry id: %w", err)
	}
	return Entry{
		ID:         id,
		Operation:  rec.Operation,
		Caller:     rec.Caller,
		Outcome:    rec.Outcome,
		ErrorCode:  rec.ErrorCode,
		LedgerTime: rec.LedgerTime,
		CreatedAt:  now.UTC().Truncate(time.Millisecond),
	}, nil
}

// Report is the result of Verify.
type Report struct {
	Checked int    `json:"checked"`
	Head    string `json:"head,omitempty"`
	Valid   bool   `json:"valid"`
	// BrokenSeq is the first entry that failed, when Valid is false.
	BrokenSeq int64  `json:"broken_seq,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
