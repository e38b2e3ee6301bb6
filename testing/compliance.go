package capitest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// RunNodeCompliance runs the behavioral suite every capi.Node
// implementation must pass. The factory must return a node serving the
// standard fixtures (see FixtureNode); transport packages run the
// suite against a fixture node behind their own wire path.
//
// Error-envelope assertions are conditional: transports that flatten
// *capi.APIError into their own error type (gRPC status errors) still
// pass as long as the call fails.
func RunNodeCompliance(t *testing.T, factory func(t *testing.T) capi.Node) {
	ctx := context.Background()

	t.Run("InfoSnapshot", func(t *testing.T) {
		n := factory(t)
		info, err := n.Info(ctx)
		if err != nil {
			t.Fatalf("info: %v", err)
		}
		want := DefaultInfo()
		if info.ChainID != want.ChainID {
			t.Errorf("chain id = %s, want %s", info.ChainID, want.ChainID)
		}
		if info.HeadBlockNum != FixtureHeadBlockNum {
			t.Errorf("head block num = %d, want %d", info.HeadBlockNum, FixtureHeadBlockNum)
		}
		if info.LastIrreversibleBlockNum > info.HeadBlockNum {
			t.Errorf("irreversible num %d ahead of head %d", info.LastIrreversibleBlockNum, info.HeadBlockNum)
		}
		if !info.HeadBlockTime.Time().Equal(want.HeadBlockTime.Time()) {
			t.Errorf("head block time = %s, want %s", info.HeadBlockTime, want.HeadBlockTime)
		}
	})

	t.Run("TaposDerivation", func(t *testing.T) {
		n := factory(t)
		info, err := n.Info(ctx)
		if err != nil {
			t.Fatalf("info: %v", err)
		}
		tapos := capi.DeriveTapos(info, 0)
		if want := uint16(FixtureLIBNum & 0xFFFF); tapos.RefBlockNum != want {
			t.Errorf("ref block num = %d, want %d", tapos.RefBlockNum, want)
		}
		if tapos.RefBlockPrefix != FixtureRefBlockPrefix {
			t.Errorf("ref block prefix = %#x, want %#x", tapos.RefBlockPrefix, FixtureRefBlockPrefix)
		}
		want := FixtureHeadTime.Add(capi.DefaultTaposWindow).Truncate(time.Second)
		if !tapos.Expiration.Time().Equal(want) {
			t.Errorf("expiration = %s, want %s", tapos.Expiration.Time(), want)
		}
	})

	t.Run("AccountLooseFields", func(t *testing.T) {
		n := factory(t)
		acc, err := n.Account(ctx, "alice")
		if err != nil {
			t.Fatalf("account: %v", err)
		}
		if acc.CoreLiquidBalance == nil {
			t.Fatal("core liquid balance missing")
		}
		if got := acc.CoreLiquidBalance.String(); got != "1234.5678 BERRY" {
			t.Errorf("core liquid balance = %q", got)
		}
		if acc.VoterInfo.Kind != types.AnyKindObject {
			t.Fatalf("voter info kind = %v, want object", acc.VoterInfo.Kind)
		}
		proxy, ok := acc.VoterInfo.Get("is_proxy")
		if !ok || proxy.Kind != types.AnyKindInt || proxy.Int != 0 {
			t.Errorf("voter info is_proxy = %v, %v", proxy, ok)
		}
		if acc.SelfDelegatedBandwidth.Kind != types.AnyKindNull {
			t.Errorf("self delegated bandwidth kind = %v, want null", acc.SelfDelegatedBandwidth.Kind)
		}
		if len(acc.Permissions) != 2 {
			t.Fatalf("permissions = %d, want 2", len(acc.Permissions))
		}
		if acc.Permissions[1].Parent != "owner" {
			t.Errorf("active parent = %q", acc.Permissions[1].Parent)
		}
	})

	t.Run("ABITableDescriptor", func(t *testing.T) {
		n := factory(t)
		res, err := n.ABI(ctx, TokenContract)
		if err != nil {
			t.Fatalf("abi: %v", err)
		}
		table, ok := res.ABI.Table("holders")
		if !ok {
			t.Fatal("holders table missing from abi")
		}
		if table.Type != "balance_row" {
			t.Errorf("table row type = %q", table.Type)
		}
	})

	t.Run("TableRowsOrder", func(t *testing.T) {
		n := factory(t)
		page, err := capi.GetTableRows[BalanceRow](ctx, n, types.TableRowsRequest{
			Code:  TokenContract,
			Scope: "berry",
			Table: "holders",
			Limit: 10,
		})
		if err != nil {
			t.Fatalf("table rows: %v", err)
		}
		want := FixtureHolders()
		if len(page.Rows) != len(want) {
			t.Fatalf("rows = %d, want %d", len(page.Rows), len(want))
		}
		if page.More {
			t.Error("unexpected more flag")
		}
		for i, row := range page.Rows {
			if row != want[i] {
				t.Errorf("row %d = %+v, want %+v", i, row, want[i])
			}
		}
	})

	t.Run("TableRowsPaging", func(t *testing.T) {
		n := factory(t)
		req := types.TableRowsRequest{
			Code:  TokenContract,
			Scope: "berry",
			Table: "holders",
			Limit: 2,
		}
		first, err := capi.GetTableRows[BalanceRow](ctx, n, req)
		if err != nil {
			t.Fatalf("first page: %v", err)
		}
		if len(first.Rows) != 2 || !first.More {
			t.Fatalf("first page: %d rows, more=%v", len(first.Rows), first.More)
		}

		req.LowerBound = "2"
		req.Limit = 10
		rest, err := capi.GetTableRows[BalanceRow](ctx, n, req)
		if err != nil {
			t.Fatalf("rest: %v", err)
		}
		if len(rest.Rows) != 3 || rest.More {
			t.Fatalf("rest: %d rows, more=%v", len(rest.Rows), rest.More)
		}
		if rest.Rows[0].Owner != "carol" {
			t.Errorf("rest starts at %q, want carol", rest.Rows[0].Owner)
		}
	})

	t.Run("CurrencyBalanceFilter", func(t *testing.T) {
		n := factory(t)
		all, err := n.CurrencyBalance(ctx, TokenContract, "alice", "")
		if err != nil {
			t.Fatalf("currency balance: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("balances = %d, want 2", len(all))
		}
		only, err := n.CurrencyBalance(ctx, TokenContract, "alice", "JAM")
		if err != nil {
			t.Fatalf("filtered balance: %v", err)
		}
		if len(only) != 1 || only[0].Symbol.Code != "JAM" {
			t.Fatalf("filtered balances = %+v", only)
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		n := factory(t)
		_, err := n.Account(ctx, "nobody")
		if err == nil {
			t.Fatal("expected error for unknown account")
		}
		if apiErr, ok := capi.IsAPI(err); ok && apiErr.Code != 404 {
			t.Errorf("code = %d, want 404", apiErr.Code)
		}
	})

	t.Run("PushTransaction", func(t *testing.T) {
		n := factory(t)
		packed := fixtureTransfer(t, n, 0)
		res, err := n.PushTransaction(ctx, packed)
		if err != nil {
			t.Fatalf("push: %v", err)
		}
		if res.TransactionID != packed.ID() {
			t.Errorf("transaction id = %s, want %s", res.TransactionID, packed.ID())
		}
		status, ok := res.Processed.Get("status")
		if !ok || status.Str != "executed" {
			t.Errorf("processed status = %v, %v", status, ok)
		}
	})

	t.Run("ExpiredTransaction", func(t *testing.T) {
		n := factory(t)
		packed := fixtureTransfer(t, n, -10*time.Minute)
		if _, err := n.PushTransaction(ctx, packed); err == nil {
			t.Fatal("expected expired transaction to be rejected")
		}
	})

	t.Run("ConcurrentReads", func(t *testing.T) {
		n := factory(t)
		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := n.Info(ctx); err != nil {
					errs <- err
				}
				_, err := capi.GetTableRows[BalanceRow](ctx, n, types.TableRowsRequest{
					Code:  TokenContract,
					Scope: "berry",
					Table: "holders",
					Limit: 10,
				})
				if err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("concurrent read: %v", err)
		}
	})
}

// fixtureTransfer builds a packed transfer against the node's current
// head, with the expiration shifted by skew (negative skew produces an
// already-expired transaction).
func fixtureTransfer(t *testing.T, n capi.Node, skew time.Duration) types.PackedTransaction {
	t.Helper()

	info, err := n.Info(context.Background())
	if err != nil {
		t.Fatalf("info: %v", err)
	}

	type transfer struct {
		From     types.AccountName `cramberry:"1"`
		To       types.AccountName `cramberry:"2"`
		Quantity types.Asset       `cramberry:"3"`
		Memo     string            `cramberry:"4"`
	}
	act, err := types.NewAction(TokenContract, "transfer",
		[]types.PermissionLevel{{Actor: "alice", Permission: "active"}},
		transfer{
			From:     "alice",
			To:       "bob",
			Quantity: types.Asset{Amount: 10000, Symbol: types.Symbol{Precision: 4, Code: "BERRY"}},
			Memo:     "compliance",
		})
	if err != nil {
		t.Fatalf("new action: %v", err)
	}

	var tx types.Transaction
	tx.SetTapos(capi.DeriveTapos(info, 0))
	if skew != 0 {
		tx.Expiration = types.TimeToPointSec(tx.Expiration.Time().Add(skew))
	}
	tx.Actions = []types.Action{act}

	packed, err := types.PackTransaction(tx)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	return packed
}
