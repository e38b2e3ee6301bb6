package capi

import (
	"context"
	"fmt"

	"github.com/blockberries/capi/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// TableRowsPage is one decoded window of a contract table: the rows
// in server-supplied index order plus the continuation flag. More
// true means rows beyond the window's limit exist; re-issue the
// request with an advanced lower bound to fetch them.
type TableRowsPage[T any] struct {
	Rows []T
	More bool
}

// DecodeTableRows interprets a raw table page against the row shape T.
//
// Each row is hex-decoded, then handed to the binary codec with T's
// shape. The decode is all-or-nothing: one malformed row fails the
// whole page — a row that doesn't match the shape signals a schema
// mismatch that cannot be trusted not to affect every row, so no
// partial page is ever returned. Hex failures surface as a
// types.FormatError wrapped with the row index; codec failures as a
// types.SchemaError carrying it.
func DecodeTableRows[T any](res types.TableRowsResult) (TableRowsPage[T], error) {
	rows := make([]T, len(res.Rows))
	for i, hexRow := range res.Rows {
		raw, err := types.DecodeHex(hexRow)
		if err != nil {
			return TableRowsPage[T]{}, fmt.Errorf("table row %d: %w", i, err)
		}
		if err := cramberry.Unmarshal(raw, &rows[i]); err != nil {
			return TableRowsPage[T]{}, &types.SchemaError{Row: i, Err: err}
		}
	}
	return TableRowsPage[T]{Rows: rows, More: res.More}, nil
}

// EncodeTableRows is the serving-side inverse of DecodeTableRows:
// each row is binary-encoded then hex-wrapped. Fixture nodes and API
// servers use it to produce wire-shaped pages.
func EncodeTableRows[T any](rows []T, more bool) (types.TableRowsResult, error) {
	out := make([]string, len(rows))
	for i, row := range rows {
		raw, err := cramberry.Marshal(row)
		if err != nil {
			return types.TableRowsResult{}, fmt.Errorf("table row %d: %w", i, err)
		}
		out[i] = types.EncodeHex(raw)
	}
	return types.TableRowsResult{Rows: out, More: more}, nil
}

// GetTableRows reads a table window from the node and decodes it
// against the row shape T in one step.
func GetTableRows[T any](ctx context.Context, n Node, req types.TableRowsRequest) (TableRowsPage[T], error) {
	res, err := n.TableRows(ctx, req)
	if err != nil {
		return TableRowsPage[T]{}, err
	}
	return DecodeTableRows[T](res)
}
