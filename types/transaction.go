package types

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// Tapos holds the reference-block and expiration fields every
// submitted transaction carries, binding it to a recent irreversible
// block so its validity window is bounded and it cannot replay across
// a fork. Derived fresh from chain-head state for each transaction;
// see capi.DeriveTapos.
type Tapos struct {
	RefBlockNum    uint16       `json:"ref_block_num" cramberry:"1"`
	RefBlockPrefix uint32       `json:"ref_block_prefix" cramberry:"2"`
	Expiration     TimePointSec `json:"expiration" cramberry:"3"`
}

// TransactionHeader carries the tapos fields and resource bounds of a
// transaction.
type TransactionHeader struct {
	Expiration       TimePointSec `json:"expiration" cramberry:"1"`
	RefBlockNum      uint16       `json:"ref_block_num" cramberry:"2"`
	RefBlockPrefix   uint32       `json:"ref_block_prefix" cramberry:"3"`
	MaxNetUsageWords uint32       `json:"max_net_usage_words" cramberry:"4"`
	MaxCPUUsageMs    uint8        `json:"max_cpu_usage_ms" cramberry:"5"`
	DelaySec         uint32       `json:"delay_sec" cramberry:"6"`
}

// Action is one contract call: the target account and action name,
// the authorizations it claims, and its payload already encoded in
// the binary form.
type Action struct {
	Account       AccountName       `json:"account" cramberry:"1"`
	Name          string            `json:"name" cramberry:"2"`
	Authorization []PermissionLevel `json:"authorization" cramberry:"3"`
	Data          HexBytes          `json:"data" cramberry:"4"`
}

// NewAction builds an Action, encoding args into the binary payload
// form.
func NewAction(account AccountName, name string, auth []PermissionLevel, args any) (Action, error) {
	data, err := cramberry.Marshal(args)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s::%s args: %w", account, name, err)
	}
	return Action{
		Account:       account,
		Name:          name,
		Authorization: auth,
		Data:          data,
	}, nil
}

// Transaction is an unsigned transaction.
type Transaction struct {
	TransactionHeader  `cramberry:"1"`
	ContextFreeActions []Action `json:"context_free_actions" cramberry:"2"`
	Actions            []Action `json:"actions" cramberry:"3"`
}

// SetTapos copies derived reference-block fields into the header.
func (tx *Transaction) SetTapos(t Tapos) {
	tx.Expiration = t.Expiration
	tx.RefBlockNum = t.RefBlockNum
	tx.RefBlockPrefix = t.RefBlockPrefix
}

// Expired reports whether the transaction's validity window has
// closed as of now.
func (tx *Transaction) Expired(now time.Time) bool {
	return !now.Before(tx.Expiration.Time())
}

// PackedTransaction is the submission form of a transaction: the
// binary-encoded transaction wrapped in hex, plus its signatures.
// Signing happens outside this binding.
type PackedTransaction struct {
	Signatures            []string `json:"signatures" cramberry:"1"`
	Compression           string   `json:"compression" cramberry:"2"`
	PackedContextFreeData HexBytes `json:"packed_context_free_data" cramberry:"3"`
	PackedTrx             HexBytes `json:"packed_trx" cramberry:"4"`
}

// PackTransaction encodes a transaction into its packed submission
// form, uncompressed and unsigned.
func PackTransaction(tx Transaction) (PackedTransaction, error) {
	raw, err := cramberry.Marshal(tx)
	if err != nil {
		return PackedTransaction{}, fmt.Errorf("pack transaction: %w", err)
	}
	return PackedTransaction{
		Signatures:            []string{},
		Compression:           "none",
		PackedContextFreeData: HexBytes{},
		PackedTrx:             raw,
	}, nil
}

// Unpack decodes the packed bytes back into a Transaction.
func (p PackedTransaction) Unpack() (Transaction, error) {
	var tx Transaction
	if err := cramberry.Unmarshal(p.PackedTrx, &tx); err != nil {
		return Transaction{}, fmt.Errorf("unpack transaction: %w", err)
	}
	return tx, nil
}

// ID is the transaction id: the digest of the packed transaction
// bytes.
func (p PackedTransaction) ID() Checksum256 {
	return Checksum256(sha256.Sum256(p.PackedTrx))
}

// PushTransactionResult is the node's answer to push_transaction.
// Processed carries the execution trace, whose schema depends on the
// actions executed.
type PushTransactionResult struct {
	TransactionID Checksum256 `json:"transaction_id" cramberry:"1"`
	Processed     Any         `json:"processed" cramberry:"2"`
}
