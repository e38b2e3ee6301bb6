package local_test

import (
	"context"
	"testing"
	"time"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/local"
	capitest "github.com/blockberries/capi/testing"
	"github.com/blockberries/capi/types"
)

func TestLocalNodeCompliance(t *testing.T) {
	capitest.RunNodeCompliance(t, func(t *testing.T) capi.Node {
		return capitest.FixtureNode(t)
	})
}

func TestBlockLookup(t *testing.T) {
	n := capitest.FixtureNode(t)
	block := types.Block{
		ID:       types.Checksum256{0x0b, 0x10},
		BlockNum: 500104,
		Producer: "berryprod",
	}
	n.SetBlock(block)

	byNum, err := n.Block(context.Background(), "500104")
	if err != nil {
		t.Fatal(err)
	}
	if byNum.ID != block.ID {
		t.Errorf("lookup by number gave %+v", byNum)
	}

	byID, err := n.Block(context.Background(), block.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if byID.BlockNum != 500104 {
		t.Errorf("lookup by id gave %+v", byID)
	}

	_, err = n.Block(context.Background(), "999999")
	if apiErr, ok := capi.IsAPI(err); !ok || apiErr.Code != 404 {
		t.Errorf("unknown block err = %v", err)
	}
}

func TestTableRowsDefaultLimit(t *testing.T) {
	rows := make([]capitest.BalanceRow, 15)
	for i := range rows {
		rows[i] = capitest.BalanceRow{Owner: types.AccountName(rune('a' + i))}
	}
	n := local.NewNode(capitest.DefaultInfo())
	if err := local.LoadTable(n, "berry.token", "berry", "wide", rows); err != nil {
		t.Fatal(err)
	}

	res, err := n.TableRows(context.Background(), types.TableRowsRequest{
		Code: "berry.token", Scope: "berry", Table: "wide",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 10 || !res.More {
		t.Errorf("default window: %d rows, more=%v", len(res.Rows), res.More)
	}
}

func TestTableRowsBounds(t *testing.T) {
	n := capitest.FixtureNode(t)
	req := types.TableRowsRequest{
		Code:       capitest.TokenContract,
		Scope:      "berry",
		Table:      "holders",
		LowerBound: "1",
		UpperBound: "3",
		Limit:      10,
	}
	page, err := capi.GetTableRows[capitest.BalanceRow](context.Background(), n, req)
	if err != nil {
		t.Fatal(err)
	}
	// Upper bound is inclusive.
	if len(page.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(page.Rows))
	}
	if page.Rows[0].Owner != "bob" || page.Rows[2].Owner != "dave" {
		t.Errorf("window = %+v", page.Rows)
	}

	req.LowerBound, req.UpperBound = "4", "2"
	page, err = capi.GetTableRows[capitest.BalanceRow](context.Background(), n, req)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Rows) != 0 || page.More {
		t.Errorf("inverted bounds gave %+v", page)
	}
}

func TestTableRowsReverse(t *testing.T) {
	n := capitest.FixtureNode(t)
	page, err := capi.GetTableRows[capitest.BalanceRow](context.Background(), n, types.TableRowsRequest{
		Code:    capitest.TokenContract,
		Scope:   "berry",
		Table:   "holders",
		Limit:   2,
		Reverse: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Rows) != 2 || !page.More {
		t.Fatalf("page = %+v", page)
	}
	if page.Rows[0].Owner != "erin" || page.Rows[1].Owner != "dave" {
		t.Errorf("reverse window = %+v", page.Rows)
	}
}

func TestTableRowsBadBound(t *testing.T) {
	n := capitest.FixtureNode(t)
	_, err := n.TableRows(context.Background(), types.TableRowsRequest{
		Code:       capitest.TokenContract,
		Scope:      "berry",
		Table:      "holders",
		LowerBound: "not-a-key",
	})
	apiErr, ok := capi.IsAPI(err)
	if !ok || apiErr.Code != 400 {
		t.Fatalf("err = %v", err)
	}
}

func TestRawRowFailsWholePage(t *testing.T) {
	n := capitest.FixtureNode(t)
	n.SetRawRow(capitest.TokenContract, "berry", "holders", "zz")

	_, err := capi.GetTableRows[capitest.BalanceRow](context.Background(), n, types.TableRowsRequest{
		Code:  capitest.TokenContract,
		Scope: "berry",
		Table: "holders",
		Limit: 10,
	})
	f, ok := types.IsFormat(err)
	if !ok {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if f.Pos != 0 {
		t.Errorf("pos = %d", f.Pos)
	}
}

func TestPushRecordsTransactions(t *testing.T) {
	n := capitest.FixtureNode(t)

	tx := types.Transaction{}
	tx.SetTapos(capi.DeriveTapos(capitest.DefaultInfo(), 0))
	packed, err := types.PackTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := n.PushTransaction(context.Background(), packed); err != nil {
		t.Fatal(err)
	}
	pushed := n.Pushed()
	if len(pushed) != 1 || pushed[0].ID() != packed.ID() {
		t.Errorf("pushed = %d transactions", len(pushed))
	}
}

func TestPushRejectsExpired(t *testing.T) {
	n := capitest.FixtureNode(t)

	var tx types.Transaction
	tx.Expiration = types.TimeToPointSec(capitest.FixtureHeadTime.Add(-time.Minute))
	packed, err := types.PackTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}

	_, err = n.PushTransaction(context.Background(), packed)
	apiErr, ok := capi.IsAPI(err)
	if !ok || apiErr.Code != 400 {
		t.Fatalf("err = %v", err)
	}
	if len(n.Pushed()) != 0 {
		t.Error("expired transaction was recorded")
	}
}

func TestPushRejectsGarbage(t *testing.T) {
	n := capitest.FixtureNode(t)
	_, err := n.PushTransaction(context.Background(), types.PackedTransaction{
		PackedTrx: types.HexBytes{0xff, 0xff, 0xff, 0xff, 0xff},
	})
	apiErr, ok := capi.IsAPI(err)
	if !ok || apiErr.Code != 400 {
		t.Fatalf("err = %v", err)
	}
}

func TestAdvanceHead(t *testing.T) {
	n := capitest.FixtureNode(t)
	info := capitest.DefaultInfo()
	info.HeadBlockNum++
	n.SetInfo(info)

	got, err := n.Info(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.HeadBlockNum != capitest.FixtureHeadBlockNum+1 {
		t.Errorf("head = %d", got.HeadBlockNum)
	}
}
