package types

// Request parameter shapes shared by the HTTP and gRPC transports.

// BlockParams selects a block by number or id for get_block.
type BlockParams struct {
	BlockNumOrID string `json:"block_num_or_id" cramberry:"1"`
}

// AccountParams names the account for get_account, get_code and
// get_abi.
type AccountParams struct {
	AccountName AccountName `json:"account_name" cramberry:"1"`
}

// CurrencyBalanceParams selects balances for get_currency_balance.
// Symbol narrows the result to one token when non-empty.
type CurrencyBalanceParams struct {
	Code    AccountName `json:"code" cramberry:"1"`
	Account AccountName `json:"account" cramberry:"2"`
	Symbol  string      `json:"symbol,omitempty" cramberry:"3"`
}
