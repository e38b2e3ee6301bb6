package capigrpc

import "github.com/blockberries/capi/types"

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request/response struct. Shared
// request shapes live in capi/types; these exist only for gRPC
// serialization boundaries.

// InfoRequest is the (empty) request for Node.Info.
type InfoRequest struct{}

// CurrencyBalanceResponse wraps the return value of
// Node.CurrencyBalance.
type CurrencyBalanceResponse struct {
	Balances []types.Asset `cramberry:"1"`
}
