// Package capi is the client-side binding to a blockberry node's
// chain query and submission API.
//
// The node speaks two serialization forms: tagged JSON (the HTTP
// transport in package http) and compact cramberry binary (the gRPC
// transport in package grpc). Table rows and packed transactions are
// cramberry-encoded even inside JSON envelopes, wrapped in hex
// strings; [DecodeTableRows] runs that hybrid pipeline.
//
// The binding is purely transformational: no retries, no signing, no
// persisted state. Callers own transport policy; every method is a
// single round trip.
package capi

import (
	"context"

	"github.com/blockberries/capi/types"
)

// Node is the endpoint surface of a chain node. Implementations are
// transport adapters (HTTP, gRPC, in-process fixtures); all methods
// are safe for concurrent use.
type Node interface {
	// Info returns the chain identity and a snapshot of the head and
	// last irreversible block. The snapshot feeds DeriveTapos.
	Info(ctx context.Context) (types.ChainInfo, error)

	// Block fetches one block by number or id.
	Block(ctx context.Context, numOrID string) (types.Block, error)

	// Account fetches an account's permissions, resources and
	// system-contract state.
	Account(ctx context.Context, name types.AccountName) (types.AccountInfo, error)

	// Code fetches the module deployed to an account plus its ABI.
	Code(ctx context.Context, name types.AccountName) (types.CodeResult, error)

	// ABI fetches just the ABI published by an account.
	ABI(ctx context.Context, name types.AccountName) (types.ABIResult, error)

	// CurrencyBalance returns the balances held by account in the
	// token contract at code, optionally narrowed to one symbol code.
	CurrencyBalance(ctx context.Context, code, account types.AccountName, symbol string) ([]types.Asset, error)

	// TableRows reads a window of a contract table. The result's rows
	// are raw hex envelopes; interpret them with DecodeTableRows or
	// use GetTableRows to combine the call and the decode.
	TableRows(ctx context.Context, req types.TableRowsRequest) (types.TableRowsResult, error)

	// PushTransaction submits a packed, signed transaction.
	PushTransaction(ctx context.Context, tx types.PackedTransaction) (types.PushTransactionResult, error)

	// Close releases the underlying transport.
	Close() error
}
