// Package transfer demonstrates the full submission path: derive
// reference-block fields from chain state, encode an action payload,
// pack the transaction and push it. Signing is out of scope; the
// packed transaction goes out with an empty signature list.
package transfer

import (
	"context"
	"time"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// Args is the payload of the token contract's transfer action.
type Args struct {
	From     types.AccountName `json:"from" cramberry:"1"`
	To       types.AccountName `json:"to" cramberry:"2"`
	Quantity types.Asset       `json:"quantity" cramberry:"3"`
	Memo     string            `json:"memo" cramberry:"4"`
}

// App submits transfers against the token contract at contract.
type App struct {
	node     capi.Node
	contract types.AccountName
	window   time.Duration
}

// New creates a transfer submitter. A non-positive window falls back
// to the default validity window.
func New(node capi.Node, contract types.AccountName, window time.Duration) *App {
	return &App{node: node, contract: contract, window: window}
}

// Build constructs and packs a transfer transaction against the
// current chain head, without submitting it.
func (a *App) Build(ctx context.Context, args Args) (types.PackedTransaction, error) {
	info, err := a.node.Info(ctx)
	if err != nil {
		return types.PackedTransaction{}, err
	}

	act, err := types.NewAction(a.contract, "transfer",
		[]types.PermissionLevel{{Actor: args.From, Permission: "active"}}, args)
	if err != nil {
		return types.PackedTransaction{}, err
	}

	var tx types.Transaction
	tx.SetTapos(capi.DeriveTapos(info, a.window))
	tx.Actions = []types.Action{act}
	return types.PackTransaction(tx)
}

// Send builds a transfer and pushes it, returning the node's receipt.
func (a *App) Send(ctx context.Context, args Args) (types.PushTransactionResult, error) {
	packed, err := a.Build(ctx, args)
	if err != nil {
		return types.PushTransactionResult{}, err
	}
	return a.node.PushTransaction(ctx, packed)
}
