// Package capihttp provides the HTTP/JSON transport for the chain
// API. Requests and responses travel as tagged JSON; table rows and
// packed transactions remain hex-wrapped binary inside the JSON
// envelopes.
package capihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// Compile-time interface check.
var _ capi.Node = (*Client)(nil)

// Client implements capi.Node against a node's HTTP endpoint.
type Client struct {
	base string
	hc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client, e.g. to set
// timeouts or a custom transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a client for the node at nodeURL
// (e.g. "http://127.0.0.1:8888").
func New(nodeURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(nodeURL, "/"),
		hc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *Client) Info(ctx context.Context) (types.ChainInfo, error) {
	var out types.ChainInfo
	err := c.post(ctx, "/v1/chain/get_info", nil, &out)
	return out, err
}

func (c *Client) Block(ctx context.Context, numOrID string) (types.Block, error) {
	var out types.Block
	err := c.post(ctx, "/v1/chain/get_block", types.BlockParams{BlockNumOrID: numOrID}, &out)
	return out, err
}

func (c *Client) Account(ctx context.Context, name types.AccountName) (types.AccountInfo, error) {
	var out types.AccountInfo
	err := c.post(ctx, "/v1/chain/get_account", types.AccountParams{AccountName: name}, &out)
	return out, err
}

func (c *Client) Code(ctx context.Context, name types.AccountName) (types.CodeResult, error) {
	var out types.CodeResult
	err := c.post(ctx, "/v1/chain/get_code", types.AccountParams{AccountName: name}, &out)
	return out, err
}

func (c *Client) ABI(ctx context.Context, name types.AccountName) (types.ABIResult, error) {
	var out types.ABIResult
	err := c.post(ctx, "/v1/chain/get_abi", types.AccountParams{AccountName: name}, &out)
	return out, err
}

func (c *Client) CurrencyBalance(ctx context.Context, code, account types.AccountName, symbol string) ([]types.Asset, error) {
	var out []types.Asset
	err := c.post(ctx, "/v1/chain/get_currency_balance", types.CurrencyBalanceParams{
		Code:    code,
		Account: account,
		Symbol:  symbol,
	}, &out)
	return out, err
}

func (c *Client) TableRows(ctx context.Context, req types.TableRowsRequest) (types.TableRowsResult, error) {
	var out types.TableRowsResult
	err := c.post(ctx, "/v1/chain/get_table_rows", req, &out)
	return out, err
}

func (c *Client) PushTransaction(ctx context.Context, tx types.PackedTransaction) (types.PushTransactionResult, error) {
	var out types.PushTransactionResult
	err := c.post(ctx, "/v1/chain/push_transaction", tx, &out)
	return out, err
}

// post issues one JSON request. A nil body sends an empty object. On
// a non-2xx status the node's error envelope is decoded and returned
// as a *capi.APIError.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload := []byte("{}")
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("capi http: encode %s request: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("capi http: build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("capi http: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("capi http: read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &capi.APIError{}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Code == 0 {
			return fmt.Errorf("capi http: %s returned status %d", path, resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("capi http: decode %s response: %w", path, err)
	}
	return nil
}
