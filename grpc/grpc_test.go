package capigrpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/blockberries/capi"
	capigrpc "github.com/blockberries/capi/grpc"
	capitest "github.com/blockberries/capi/testing"
	"github.com/blockberries/capi/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// startServer serves a fixture node over gRPC on a random port and
// returns the listener address and a cleanup function.
func startServer(t *testing.T, backend capi.Node) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	capigrpc.NewNodeServer(backend).Register(s)

	go func() {
		_ = s.Serve(lis)
	}()

	return lis.Addr().String(), func() {
		s.GracefulStop()
	}
}

func dial(t *testing.T, addr string) *capigrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := capigrpc.Dial(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func TestGRPCNodeCompliance(t *testing.T) {
	capitest.RunNodeCompliance(t, func(t *testing.T) capi.Node {
		addr, cleanup := startServer(t, capitest.FixtureNode(t))
		t.Cleanup(cleanup)
		client := dial(t, addr)
		t.Cleanup(func() { client.Close() })
		return client
	})
}

func TestGRPC_Info(t *testing.T) {
	addr, cleanup := startServer(t, capitest.FixtureNode(t))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	info, err := client.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info != capitest.DefaultInfo() {
		t.Fatalf("info mismatch: got %+v", info)
	}
}

func TestGRPC_TableRows(t *testing.T) {
	addr, cleanup := startServer(t, capitest.FixtureNode(t))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	page, err := capi.GetTableRows[capitest.BalanceRow](context.Background(), client, types.TableRowsRequest{
		Code:  capitest.TokenContract,
		Scope: "berry",
		Table: "holders",
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("GetTableRows: %v", err)
	}
	want := capitest.FixtureHolders()
	if len(page.Rows) != len(want) {
		t.Fatalf("rows: got %d, want %d", len(page.Rows), len(want))
	}
	for i := range want {
		if page.Rows[i] != want[i] {
			t.Fatalf("row %d mismatch: got %+v, want %+v", i, page.Rows[i], want[i])
		}
	}
}

func TestGRPC_AccountAnyFields(t *testing.T) {
	addr, cleanup := startServer(t, capitest.FixtureNode(t))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	acc, err := client.Account(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	// Loose sub-documents cross the binary wire intact.
	isProxy, ok := acc.VoterInfo.Get("is_proxy")
	if !ok || isProxy.Int != 0 {
		t.Fatalf("voter_info.is_proxy: %v, %v", isProxy, ok)
	}
	if acc.RefundRequest.Kind != types.AnyKindNull {
		t.Fatalf("refund_request kind: %v", acc.RefundRequest.Kind)
	}
	if acc.CoreLiquidBalance == nil || acc.CoreLiquidBalance.Symbol.Code != "BERRY" {
		t.Fatalf("core_liquid_balance: %v", acc.CoreLiquidBalance)
	}
}

func TestGRPC_PushTransaction(t *testing.T) {
	backend := capitest.FixtureNode(t)
	addr, cleanup := startServer(t, backend)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	var tx types.Transaction
	tx.SetTapos(capi.DeriveTapos(capitest.DefaultInfo(), 0))
	packed, err := types.PackTransaction(tx)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	res, err := client.PushTransaction(context.Background(), packed)
	if err != nil {
		t.Fatalf("PushTransaction: %v", err)
	}
	if res.TransactionID != packed.ID() {
		t.Fatalf("transaction id mismatch")
	}
	if pushed := backend.Pushed(); len(pushed) != 1 {
		t.Fatalf("backend recorded %d transactions", len(pushed))
	}
}

func TestGRPC_UnknownAccountFails(t *testing.T) {
	addr, cleanup := startServer(t, capitest.FixtureNode(t))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	// The envelope is flattened into a gRPC status error on this
	// transport; the call must still fail.
	if _, err := client.Account(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown account")
	}
}

func TestGRPC_CurrencyBalance(t *testing.T) {
	addr, cleanup := startServer(t, capitest.FixtureNode(t))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	balances, err := client.CurrencyBalance(context.Background(), capitest.TokenContract, "alice", "JAM")
	if err != nil {
		t.Fatalf("CurrencyBalance: %v", err)
	}
	if len(balances) != 1 || balances[0].String() != "0.99 JAM" {
		t.Fatalf("balances: %+v", balances)
	}
}
