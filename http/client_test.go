package capihttp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blockberries/capi"
	capihttp "github.com/blockberries/capi/http"
	"github.com/blockberries/capi/server"
	capitest "github.com/blockberries/capi/testing"
	"github.com/blockberries/capi/types"
)

// startNode serves a fixture node over real HTTP and returns a client
// pointed at it.
func startNode(t *testing.T) *capihttp.Client {
	t.Helper()
	srv := httptest.NewServer(server.New(capitest.FixtureNode(t)))
	t.Cleanup(srv.Close)
	c := capihttp.New(srv.URL)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHTTPNodeCompliance(t *testing.T) {
	capitest.RunNodeCompliance(t, func(t *testing.T) capi.Node {
		return startNode(t)
	})
}

func TestInfoOverHTTP(t *testing.T) {
	c := startNode(t)
	info, err := c.Info(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := capitest.DefaultInfo()
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestAccountJSONSurvivesWire(t *testing.T) {
	c := startNode(t)
	acc, err := c.Account(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	// Loose sub-documents cross the JSON wire intact, order included.
	producers, ok := acc.VoterInfo.Get("producers")
	if !ok || producers.Kind != types.AnyKindArray {
		t.Fatalf("voter_info.producers = %v, %v", producers, ok)
	}
	if len(producers.Elems) != 1 || producers.Elems[0].Str != "berryprod" {
		t.Errorf("producers = %s", producers)
	}
	if acc.VoterInfo.Members[0].Key != "owner" {
		t.Errorf("voter_info member order lost: %s", acc.VoterInfo)
	}
}

func TestAPIErrorOverHTTP(t *testing.T) {
	c := startNode(t)
	_, err := c.Account(context.Background(), "nobody")
	apiErr, ok := capi.IsAPI(err)
	if !ok {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Code != http.StatusNotFound || apiErr.Message != "unknown account" {
		t.Errorf("envelope = %+v", apiErr)
	}
	if apiErr.What == "" {
		t.Error("envelope lost the what field")
	}
}

func TestNonEnvelopeErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := capihttp.New(srv.URL)
	defer c.Close()

	_, err := c.Info(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := capi.IsAPI(err); ok {
		t.Errorf("plain-text failure produced an envelope: %v", err)
	}
}

func TestTrailingSlashBase(t *testing.T) {
	srv := httptest.NewServer(server.New(capitest.FixtureNode(t)))
	defer srv.Close()

	c := capihttp.New(srv.URL + "/")
	defer c.Close()
	if _, err := c.Info(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestContextCancellation(t *testing.T) {
	c := startNode(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Info(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestPushTransactionOverHTTP(t *testing.T) {
	c := startNode(t)

	var tx types.Transaction
	tx.SetTapos(capi.DeriveTapos(capitest.DefaultInfo(), 0))
	packed, err := types.PackTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.PushTransaction(context.Background(), packed)
	if err != nil {
		t.Fatal(err)
	}
	if res.TransactionID != packed.ID() {
		t.Errorf("id = %s, want %s", res.TransactionID, packed.ID())
	}
}
