// Package capitest provides test utilities for working against the
// chain API: a configurable mock node, standard fixtures, and a
// compliance suite any capi.Node implementation must pass.
package capitest

import (
	"context"
	"sync/atomic"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// Compile-time interface check.
var _ capi.Node = (*MockNode)(nil)

// MockNode is a configurable capi.Node for client-side testing. All
// methods are configurable via function fields; unconfigured methods
// return zero values.
type MockNode struct {
	InfoFn            func(context.Context) (types.ChainInfo, error)
	BlockFn           func(context.Context, string) (types.Block, error)
	AccountFn         func(context.Context, types.AccountName) (types.AccountInfo, error)
	CodeFn            func(context.Context, types.AccountName) (types.CodeResult, error)
	ABIFn             func(context.Context, types.AccountName) (types.ABIResult, error)
	CurrencyBalanceFn func(context.Context, types.AccountName, types.AccountName, string) ([]types.Asset, error)
	TableRowsFn       func(context.Context, types.TableRowsRequest) (types.TableRowsResult, error)
	PushFn            func(context.Context, types.PackedTransaction) (types.PushTransactionResult, error)

	// Call counters (atomic for concurrent access).
	InfoCalls      atomic.Int64
	TableRowsCalls atomic.Int64
	PushCalls      atomic.Int64
}

func (m *MockNode) Info(ctx context.Context) (types.ChainInfo, error) {
	m.InfoCalls.Add(1)
	if m.InfoFn != nil {
		return m.InfoFn(ctx)
	}
	return types.ChainInfo{}, nil
}

func (m *MockNode) Block(ctx context.Context, numOrID string) (types.Block, error) {
	if m.BlockFn != nil {
		return m.BlockFn(ctx, numOrID)
	}
	return types.Block{}, nil
}

func (m *MockNode) Account(ctx context.Context, name types.AccountName) (types.AccountInfo, error) {
	if m.AccountFn != nil {
		return m.AccountFn(ctx, name)
	}
	return types.AccountInfo{AccountName: name}, nil
}

func (m *MockNode) Code(ctx context.Context, name types.AccountName) (types.CodeResult, error) {
	if m.CodeFn != nil {
		return m.CodeFn(ctx, name)
	}
	return types.CodeResult{AccountName: name}, nil
}

func (m *MockNode) ABI(ctx context.Context, name types.AccountName) (types.ABIResult, error) {
	if m.ABIFn != nil {
		return m.ABIFn(ctx, name)
	}
	return types.ABIResult{AccountName: name}, nil
}

func (m *MockNode) CurrencyBalance(ctx context.Context, code, account types.AccountName, symbol string) ([]types.Asset, error) {
	if m.CurrencyBalanceFn != nil {
		return m.CurrencyBalanceFn(ctx, code, account, symbol)
	}
	return nil, nil
}

func (m *MockNode) TableRows(ctx context.Context, req types.TableRowsRequest) (types.TableRowsResult, error) {
	m.TableRowsCalls.Add(1)
	if m.TableRowsFn != nil {
		return m.TableRowsFn(ctx, req)
	}
	return types.TableRowsResult{Rows: []string{}}, nil
}

func (m *MockNode) PushTransaction(ctx context.Context, tx types.PackedTransaction) (types.PushTransactionResult, error) {
	m.PushCalls.Add(1)
	if m.PushFn != nil {
		return m.PushFn(ctx, tx)
	}
	return types.PushTransactionResult{TransactionID: tx.ID()}, nil
}

func (m *MockNode) Close() error { return nil }
