// Package local provides an in-process, fixture-backed capi.Node.
//
// Fixtures are loaded through the same encode pipeline the real node
// uses — table rows are binary-encoded and hex-wrapped — so reads
// exercise the full decode path with no network involved. It backs
// example and transport tests, and offline development against
// recorded chain state.
package local

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// Compile-time interface check.
var _ capi.Node = (*Node)(nil)

// defaultRowLimit caps a table window when the request leaves Limit
// unset, matching the node's default.
const defaultRowLimit = 10

type tableKey struct {
	code  types.AccountName
	scope string
	table string
}

type balanceKey struct {
	code    types.AccountName
	account types.AccountName
}

// Node is a fixture-backed chain node. The zero value is not usable;
// create one with NewNode. Safe for concurrent use.
type Node struct {
	mu       sync.RWMutex
	info     types.ChainInfo
	blocks   map[string]types.Block
	accounts map[types.AccountName]types.AccountInfo
	codes    map[types.AccountName]types.CodeResult
	balances map[balanceKey][]types.Asset
	tables   map[tableKey][]string
	pushed   []types.PackedTransaction
}

// NewNode creates a fixture node reporting the given chain info.
func NewNode(info types.ChainInfo) *Node {
	return &Node{
		info:     info,
		blocks:   make(map[string]types.Block),
		accounts: make(map[types.AccountName]types.AccountInfo),
		codes:    make(map[types.AccountName]types.CodeResult),
		balances: make(map[balanceKey][]types.Asset),
		tables:   make(map[tableKey][]string),
	}
}

// SetInfo replaces the chain-info snapshot (e.g. to advance the head).
func (n *Node) SetInfo(info types.ChainInfo) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.info = info
}

// SetBlock registers a block, addressable by id and by number.
func (n *Node) SetBlock(b types.Block) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocks[b.ID.String()] = b
	n.blocks[strconv.FormatUint(uint64(b.BlockNum), 10)] = b
}

// SetAccount registers an account fixture.
func (n *Node) SetAccount(a types.AccountInfo) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[a.AccountName] = a
}

// SetCode registers a deployed-code fixture.
func (n *Node) SetCode(c types.CodeResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[c.AccountName] = c
}

// SetBalances registers token balances held by account under the
// token contract at code.
func (n *Node) SetBalances(code, account types.AccountName, balances ...types.Asset) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[balanceKey{code: code, account: account}] = balances
}

// LoadTable loads typed rows into a contract table, encoding each
// through the binary codec and hex-wrapping it exactly as the real
// node serves them. Row position doubles as the primary key for
// bound/limit windowing.
func LoadTable[T any](n *Node, code types.AccountName, scope, table string, rows []T) error {
	res, err := capi.EncodeTableRows(rows, false)
	if err != nil {
		return fmt.Errorf("local: load table %s/%s/%s: %w", code, scope, table, err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tables[tableKey{code: code, scope: scope, table: table}] = res.Rows
	return nil
}

// SetRawRow appends a pre-encoded row verbatim. Tests use it to plant
// rows the decode pipeline must reject.
func (n *Node) SetRawRow(code types.AccountName, scope, table, hexRow string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	k := tableKey{code: code, scope: scope, table: table}
	n.tables[k] = append(n.tables[k], hexRow)
}

// Pushed returns the transactions submitted so far, in order.
func (n *Node) Pushed() []types.PackedTransaction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]types.PackedTransaction, len(n.pushed))
	copy(out, n.pushed)
	return out
}

// --- capi.Node ---

func (n *Node) Info(_ context.Context) (types.ChainInfo, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.info, nil
}

func (n *Node) Block(_ context.Context, numOrID string) (types.Block, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	b, ok := n.blocks[numOrID]
	if !ok {
		return types.Block{}, &capi.APIError{
			Code:    http.StatusNotFound,
			Message: "unknown block",
			What:    fmt.Sprintf("no block %q", numOrID),
		}
	}
	return b, nil
}

func (n *Node) Account(_ context.Context, name types.AccountName) (types.AccountInfo, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	a, ok := n.accounts[name]
	if !ok {
		return types.AccountInfo{}, &capi.APIError{
			Code:    http.StatusNotFound,
			Message: "unknown account",
			What:    fmt.Sprintf("no account %q", name),
		}
	}
	return a, nil
}

func (n *Node) Code(_ context.Context, name types.AccountName) (types.CodeResult, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.codes[name]
	if !ok {
		return types.CodeResult{}, &capi.APIError{
			Code:    http.StatusNotFound,
			Message: "unknown account",
			What:    fmt.Sprintf("no code on account %q", name),
		}
	}
	return c, nil
}

func (n *Node) ABI(_ context.Context, name types.AccountName) (types.ABIResult, error) {
	c, err := n.Code(context.Background(), name)
	if err != nil {
		return types.ABIResult{}, err
	}
	return types.ABIResult{AccountName: c.AccountName, ABI: c.ABI}, nil
}

func (n *Node) CurrencyBalance(_ context.Context, code, account types.AccountName, symbol string) ([]types.Asset, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []types.Asset
	for _, a := range n.balances[balanceKey{code: code, account: account}] {
		if symbol == "" || a.Symbol.Code == symbol {
			out = append(out, a)
		}
	}
	return out, nil
}

// TableRows serves a window of a loaded table. Bounds are decimal
// primary keys (row positions); the window is truncated to the limit
// with More set when rows remain past it.
func (n *Node) TableRows(_ context.Context, req types.TableRowsRequest) (types.TableRowsResult, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rows, ok := n.tables[tableKey{code: req.Code, scope: req.Scope, table: req.Table}]
	if !ok {
		return types.TableRowsResult{}, &capi.APIError{
			Code:    http.StatusNotFound,
			Message: "unknown table",
			What:    fmt.Sprintf("no table %s/%s/%s", req.Code, req.Scope, req.Table),
		}
	}

	lower, upper := 0, len(rows)
	if req.LowerBound != "" {
		v, err := strconv.Atoi(req.LowerBound)
		if err != nil {
			return types.TableRowsResult{}, &capi.APIError{
				Code:    http.StatusBadRequest,
				Message: "invalid lower_bound",
				What:    err.Error(),
			}
		}
		lower = min(v, len(rows))
	}
	if req.UpperBound != "" {
		v, err := strconv.Atoi(req.UpperBound)
		if err != nil {
			return types.TableRowsResult{}, &capi.APIError{
				Code:    http.StatusBadRequest,
				Message: "invalid upper_bound",
				What:    err.Error(),
			}
		}
		upper = min(v+1, len(rows))
	}
	if lower >= upper {
		return types.TableRowsResult{Rows: []string{}}, nil
	}

	window := rows[lower:upper]
	if req.Reverse {
		reversed := make([]string, len(window))
		for i, r := range window {
			reversed[len(window)-1-i] = r
		}
		window = reversed
	}

	limit := int(req.Limit)
	if limit <= 0 {
		limit = defaultRowLimit
	}
	more := len(window) > limit
	if more {
		window = window[:limit]
	}

	out := make([]string, len(window))
	copy(out, window)
	return types.TableRowsResult{Rows: out, More: more}, nil
}

// PushTransaction records the transaction and answers with an
// executed receipt. Transactions whose validity window has closed
// against the fixture's head time are rejected the way the node
// rejects them.
func (n *Node) PushTransaction(_ context.Context, tx types.PackedTransaction) (types.PushTransactionResult, error) {
	unpacked, err := tx.Unpack()
	if err != nil {
		return types.PushTransactionResult{}, &capi.APIError{
			Code:    http.StatusBadRequest,
			Message: "invalid packed transaction",
			What:    err.Error(),
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if unpacked.Expired(n.info.HeadBlockTime.Time()) {
		return types.PushTransactionResult{}, &capi.APIError{
			Code:    http.StatusBadRequest,
			Message: "transaction expired",
			What:    fmt.Sprintf("expiration %s is not after head time %s", unpacked.Expiration, n.info.HeadBlockTime),
		}
	}

	n.pushed = append(n.pushed, tx)
	return types.PushTransactionResult{
		TransactionID: tx.ID(),
		Processed: types.AnyObject(
			types.AnyMember{Key: "status", Value: types.AnyString("executed")},
			types.AnyMember{Key: "block_num", Value: types.AnyInt(int64(n.info.HeadBlockNum) + 1)},
		),
	}, nil
}

func (n *Node) Close() error { return nil }
