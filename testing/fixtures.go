package capitest

import (
	"testing"
	"time"

	"github.com/blockberries/capi/local"
	"github.com/blockberries/capi/types"
)

// Standard fixture chain used by the compliance suite and transport
// tests. The numbers are chosen so derived tapos fields are easy to
// assert: the irreversible block number overflows uint16, and the id
// carries a recognizable prefix at offset 8.
const (
	// TokenContract is the fixture token contract account.
	TokenContract types.AccountName = "berry.token"

	// FixtureHeadBlockNum and FixtureLIBNum are the fixture head and
	// last irreversible block numbers. 500000 & 0xFFFF == 41248.
	FixtureHeadBlockNum uint32 = 500104
	FixtureLIBNum       uint32 = 500000

	// FixtureRefBlockPrefix is the little-endian uint32 planted at
	// byte offset 8 of the irreversible block id.
	FixtureRefBlockPrefix uint32 = 0x87654321
)

// FixtureHeadTime is the fixture head block timestamp.
var FixtureHeadTime = time.Date(2025, 6, 1, 12, 0, 0, 500_000_000, time.UTC)

// BalanceRow is the row shape of the fixture token holders table.
type BalanceRow struct {
	Owner types.AccountName `json:"owner" cramberry:"1"`
	Funds types.Asset       `json:"funds" cramberry:"2"`
}

// FixtureHolders are the rows loaded into berry.token/berry/holders,
// in index order.
func FixtureHolders() []BalanceRow {
	owners := []types.AccountName{"alice", "bob", "carol", "dave", "erin"}
	rows := make([]BalanceRow, len(owners))
	for i, owner := range owners {
		rows[i] = BalanceRow{
			Owner: owner,
			Funds: types.Asset{
				Amount: int64(i+1) * 10000,
				Symbol: types.Symbol{Precision: 4, Code: "BERRY"},
			},
		}
	}
	return rows
}

// DefaultInfo returns the fixture chain-info snapshot.
func DefaultInfo() types.ChainInfo {
	chainID := types.Checksum256{0xbe, 0x44, 0x79}

	libNum := FixtureLIBNum
	prefix := FixtureRefBlockPrefix
	headNum := FixtureHeadBlockNum

	var libID types.Checksum256
	libID[0] = byte(libNum >> 24)
	libID[1] = byte(libNum >> 16)
	libID[2] = byte(libNum >> 8)
	libID[3] = byte(libNum)
	libID[8] = byte(prefix)
	libID[9] = byte(prefix >> 8)
	libID[10] = byte(prefix >> 16)
	libID[11] = byte(prefix >> 24)

	headID := libID
	headID[3] = byte(headNum)
	headID[12] = 0xff

	return types.ChainInfo{
		ServerVersion:            "deadbeef",
		ChainID:                  chainID,
		HeadBlockNum:             FixtureHeadBlockNum,
		LastIrreversibleBlockNum: FixtureLIBNum,
		LastIrreversibleBlockID:  libID,
		HeadBlockID:              headID,
		HeadBlockTime:            types.TimeToPoint(FixtureHeadTime),
		HeadBlockProducer:        "berryprod",
		VirtualBlockCPULimit:     200000,
		VirtualBlockNetLimit:     1048576,
		BlockCPULimit:            199900,
		BlockNetLimit:            1048576,
		ServerVersionString:      "v1.6.0",
	}
}

// FixtureNode builds a local node preloaded with the standard
// fixtures: the alice account, the token contract's ABI, balances,
// and the holders table.
func FixtureNode(t *testing.T) *local.Node {
	t.Helper()

	n := local.NewNode(DefaultInfo())

	var key types.PublicKey
	key[0] = 0x02
	key[1] = 0xb5

	core := types.Asset{Amount: 1234_5678, Symbol: types.Symbol{Precision: 4, Code: "BERRY"}}
	n.SetAccount(types.AccountInfo{
		AccountName:       "alice",
		HeadBlockNum:      FixtureHeadBlockNum,
		HeadBlockTime:     types.TimeToPoint(FixtureHeadTime),
		Created:           types.TimeToPoint(FixtureHeadTime.Add(-24 * time.Hour)),
		CoreLiquidBalance: &core,
		RAMQuota:          8192,
		NetWeight:         10000,
		CPUWeight:         10000,
		NetLimit:          types.AccountResourceLimit{Used: 11, Available: 989, Max: 1000},
		CPULimit:          types.AccountResourceLimit{Used: 5, Available: 495, Max: 500},
		RAMUsage:          2996,
		Permissions: []types.Permission{
			{
				PermName: "owner",
				RequiredAuth: types.Authority{
					Threshold: 1,
					Keys:      []types.KeyWeight{{Key: key, Weight: 1}},
				},
			},
			{
				PermName: "active",
				Parent:   "owner",
				RequiredAuth: types.Authority{
					Threshold: 1,
					Keys:      []types.KeyWeight{{Key: key, Weight: 1}},
				},
			},
		},
		TotalResources: types.AnyObject(
			types.AnyMember{Key: "owner", Value: types.AnyString("alice")},
			types.AnyMember{Key: "ram_bytes", Value: types.AnyInt(8192)},
		),
		SelfDelegatedBandwidth: types.AnyNull(),
		RefundRequest:          types.AnyNull(),
		VoterInfo: types.AnyObject(
			types.AnyMember{Key: "owner", Value: types.AnyString("alice")},
			types.AnyMember{Key: "is_proxy", Value: types.AnyInt(0)},
			types.AnyMember{Key: "producers", Value: types.AnyArray(types.AnyString("berryprod"))},
		),
	})

	n.SetCode(types.CodeResult{
		AccountName: TokenContract,
		CodeHash:    types.Checksum256{0xc0, 0xde},
		WASM:        types.HexBytes{0x00, 0x61, 0x73, 0x6d},
		ABI: types.ABIDef{
			Version: "berry::abi/1.1",
			Structs: []types.ABIStruct{
				{Name: "balance_row", Fields: []types.ABIField{
					{Name: "owner", Type: "name"},
					{Name: "funds", Type: "asset"},
				}},
				{Name: "transfer", Fields: []types.ABIField{
					{Name: "from", Type: "name"},
					{Name: "to", Type: "name"},
					{Name: "quantity", Type: "asset"},
					{Name: "memo", Type: "string"},
				}},
			},
			Actions: []types.ABIAction{{Name: "transfer", Type: "transfer"}},
			Tables: []types.ABITable{{
				Name:      "holders",
				IndexType: "i64",
				Type:      "balance_row",
			}},
		},
	})

	n.SetBalances(TokenContract, "alice",
		types.Asset{Amount: 1234_5678, Symbol: types.Symbol{Precision: 4, Code: "BERRY"}},
		types.Asset{Amount: 99, Symbol: types.Symbol{Precision: 2, Code: "JAM"}},
	)

	if err := local.LoadTable(n, TokenContract, "berry", "holders", FixtureHolders()); err != nil {
		t.Fatalf("load holders table: %v", err)
	}

	return n
}
