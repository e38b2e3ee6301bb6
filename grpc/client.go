package capigrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ capi.Node = (*Client)(nil)

// Client implements capi.Node against a remote node over gRPC using
// cramberry serialization. No protobuf types or conversion layer
// required.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote chain node.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("capi grpc: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) Info(ctx context.Context) (types.ChainInfo, error) {
	resp := new(types.ChainInfo)
	if err := c.cc.Invoke(ctx, fullMethod("Info"), &InfoRequest{}, resp); err != nil {
		return types.ChainInfo{}, err
	}
	return *resp, nil
}

func (c *Client) Block(ctx context.Context, numOrID string) (types.Block, error) {
	req := &types.BlockParams{BlockNumOrID: numOrID}
	resp := new(types.Block)
	if err := c.cc.Invoke(ctx, fullMethod("Block"), req, resp); err != nil {
		return types.Block{}, err
	}
	return *resp, nil
}

func (c *Client) Account(ctx context.Context, name types.AccountName) (types.AccountInfo, error) {
	req := &types.AccountParams{AccountName: name}
	resp := new(types.AccountInfo)
	if err := c.cc.Invoke(ctx, fullMethod("Account"), req, resp); err != nil {
		return types.AccountInfo{}, err
	}
	return *resp, nil
}

func (c *Client) Code(ctx context.Context, name types.AccountName) (types.CodeResult, error) {
	req := &types.AccountParams{AccountName: name}
	resp := new(types.CodeResult)
	if err := c.cc.Invoke(ctx, fullMethod("Code"), req, resp); err != nil {
		return types.CodeResult{}, err
	}
	return *resp, nil
}

func (c *Client) ABI(ctx context.Context, name types.AccountName) (types.ABIResult, error) {
	req := &types.AccountParams{AccountName: name}
	resp := new(types.ABIResult)
	if err := c.cc.Invoke(ctx, fullMethod("ABI"), req, resp); err != nil {
		return types.ABIResult{}, err
	}
	return *resp, nil
}

func (c *Client) CurrencyBalance(ctx context.Context, code, account types.AccountName, symbol string) ([]types.Asset, error) {
	req := &types.CurrencyBalanceParams{Code: code, Account: account, Symbol: symbol}
	resp := new(CurrencyBalanceResponse)
	if err := c.cc.Invoke(ctx, fullMethod("CurrencyBalance"), req, resp); err != nil {
		return nil, err
	}
	return resp.Balances, nil
}

func (c *Client) TableRows(ctx context.Context, req types.TableRowsRequest) (types.TableRowsResult, error) {
	resp := new(types.TableRowsResult)
	if err := c.cc.Invoke(ctx, fullMethod("TableRows"), &req, resp); err != nil {
		return types.TableRowsResult{}, err
	}
	return *resp, nil
}

func (c *Client) PushTransaction(ctx context.Context, tx types.PackedTransaction) (types.PushTransactionResult, error) {
	resp := new(types.PushTransactionResult)
	if err := c.cc.Invoke(ctx, fullMethod("PushTransaction"), &tx, resp); err != nil {
		return types.PushTransactionResult{}, err
	}
	return *resp, nil
}
