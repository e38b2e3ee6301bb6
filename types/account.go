package types

// AccountInfo is the node's answer to get_account.
//
// The resource and voting sub-documents at the bottom are governed by
// system contracts rather than the node itself, so their schema is not
// fixed; they are surfaced as Any trees.
type AccountInfo struct {
	AccountName       AccountName `json:"account_name" cramberry:"1"`
	HeadBlockNum      uint32      `json:"head_block_num" cramberry:"2"`
	HeadBlockTime     TimePoint   `json:"head_block_time" cramberry:"3"`
	Privileged        bool        `json:"privileged" cramberry:"4"`
	LastCodeUpdate    TimePoint   `json:"last_code_update" cramberry:"5"`
	Created           TimePoint   `json:"created" cramberry:"6"`
	CoreLiquidBalance *Asset      `json:"core_liquid_balance,omitempty" cramberry:"7"`

	RAMQuota  int64                `json:"ram_quota" cramberry:"8"`
	NetWeight int64                `json:"net_weight" cramberry:"9"`
	CPUWeight int64                `json:"cpu_weight" cramberry:"10"`
	NetLimit  AccountResourceLimit `json:"net_limit" cramberry:"11"`
	CPULimit  AccountResourceLimit `json:"cpu_limit" cramberry:"12"`
	RAMUsage  int64                `json:"ram_usage" cramberry:"13"`

	Permissions []Permission `json:"permissions" cramberry:"14"`

	TotalResources         Any `json:"total_resources" cramberry:"15"`
	SelfDelegatedBandwidth Any `json:"self_delegated_bandwidth" cramberry:"16"`
	RefundRequest          Any `json:"refund_request" cramberry:"17"`
	VoterInfo              Any `json:"voter_info" cramberry:"18"`
}

// AccountResourceLimit describes usage of one metered resource.
type AccountResourceLimit struct {
	Used      int64 `json:"used" cramberry:"1"`
	Available int64 `json:"available" cramberry:"2"`
	Max       int64 `json:"max" cramberry:"3"`
}

// Permission is one named permission of an account.
type Permission struct {
	PermName     string    `json:"perm_name" cramberry:"1"`
	Parent       string    `json:"parent" cramberry:"2"`
	RequiredAuth Authority `json:"required_auth" cramberry:"3"`
}

// Authority is the weighted-threshold condition that satisfies a
// permission.
type Authority struct {
	Threshold uint32                  `json:"threshold" cramberry:"1"`
	Keys      []KeyWeight             `json:"keys" cramberry:"2"`
	Accounts  []PermissionLevelWeight `json:"accounts" cramberry:"3"`
	Waits     []WaitWeight            `json:"waits" cramberry:"4"`
}

// KeyWeight is a public key's contribution toward an authority
// threshold.
type KeyWeight struct {
	Key    PublicKey `json:"key" cramberry:"1"`
	Weight uint16    `json:"weight" cramberry:"2"`
}

// PermissionLevel names an actor plus one of its permissions,
// e.g. alice@active.
type PermissionLevel struct {
	Actor      AccountName `json:"actor" cramberry:"1"`
	Permission string      `json:"permission" cramberry:"2"`
}

// PermissionLevelWeight is another account's permission contributing
// toward an authority threshold.
type PermissionLevelWeight struct {
	Permission PermissionLevel `json:"permission" cramberry:"1"`
	Weight     uint16          `json:"weight" cramberry:"2"`
}

// WaitWeight is a time delay contributing toward an authority
// threshold.
type WaitWeight struct {
	WaitSec uint32 `json:"wait_sec" cramberry:"1"`
	Weight  uint16 `json:"weight" cramberry:"2"`
}
