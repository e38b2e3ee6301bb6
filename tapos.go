package capi

import (
	"encoding/binary"
	"time"

	"github.com/blockberries/capi/types"
)

// DefaultTaposWindow is the validity window applied when DeriveTapos
// is called with a non-positive window.
const DefaultTaposWindow = 60 * time.Second

// refBlockPrefixOffset is where the 32-bit prefix sits inside a block
// id. The leading 8 bytes of an id encode the block number, so the
// prefix is read past them.
const refBlockPrefixOffset = 8

// DeriveTapos computes the reference-block fields for a new
// transaction from a chain-info snapshot.
//
// Both the reference number and the prefix come from the last
// irreversible block, never the head block: a head-block reference
// could be forked out before the transaction is included, which would
// invalidate it. The expiration is the head block's time plus the
// window, truncated to whole seconds. Pure and deterministic; never
// fails on well-formed chain info.
func DeriveTapos(info types.ChainInfo, window time.Duration) types.Tapos {
	if window <= 0 {
		window = DefaultTaposWindow
	}
	expiry := info.HeadBlockTime.Time().Add(window).Truncate(time.Second)
	return types.Tapos{
		RefBlockNum:    uint16(info.LastIrreversibleBlockNum),
		RefBlockPrefix: binary.LittleEndian.Uint32(info.LastIrreversibleBlockID[refBlockPrefixOffset : refBlockPrefixOffset+4]),
		Expiration:     types.TimeToPointSec(expiry),
	}
}
