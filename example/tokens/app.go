// Package tokens demonstrates reading token state from a chain node:
// balances via get_currency_balance and full holder tables via the
// paged get_table_rows pipeline.
package tokens

import (
	"context"
	"strconv"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// HolderRow is the row shape of a token contract's holders table.
type HolderRow struct {
	Owner types.AccountName `json:"owner" cramberry:"1"`
	Funds types.Asset       `json:"funds" cramberry:"2"`
}

// App reads token state from a node.
type App struct {
	node     capi.Node
	contract types.AccountName
}

// New creates a token reader for the contract deployed at contract.
func New(node capi.Node, contract types.AccountName) *App {
	return &App{node: node, contract: contract}
}

// Balance returns the balance account holds in one symbol, or false
// when the account holds none.
func (a *App) Balance(ctx context.Context, account types.AccountName, symbol string) (types.Asset, bool, error) {
	balances, err := a.node.CurrencyBalance(ctx, a.contract, account, symbol)
	if err != nil {
		return types.Asset{}, false, err
	}
	if len(balances) == 0 {
		return types.Asset{}, false, nil
	}
	return balances[0], true, nil
}

// pageSize bounds each get_table_rows round trip.
const pageSize = 2

// AllHolders walks the holders table in scope to the end, following
// the continuation flag page by page.
func (a *App) AllHolders(ctx context.Context, scope string) ([]HolderRow, error) {
	var out []HolderRow
	req := types.TableRowsRequest{
		Code:  a.contract,
		Scope: scope,
		Table: "holders",
		Limit: pageSize,
	}
	next := 0
	for {
		page, err := capi.GetTableRows[HolderRow](ctx, a.node, req)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Rows...)
		if !page.More {
			return out, nil
		}
		next += len(page.Rows)
		req.LowerBound = strconv.Itoa(next)
	}
}

// Supply sums every holder's funds in scope. All holders must share
// one symbol.
func (a *App) Supply(ctx context.Context, scope string) (types.Asset, error) {
	holders, err := a.AllHolders(ctx, scope)
	if err != nil {
		return types.Asset{}, err
	}
	var total types.Asset
	for i, h := range holders {
		if i == 0 {
			total.Symbol = h.Funds.Symbol
		}
		total.Amount += h.Funds.Amount
	}
	return total, nil
}
