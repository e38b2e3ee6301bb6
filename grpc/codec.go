// Package capigrpc provides the gRPC transport for the chain API.
//
// Messages travel as cramberry binary rather than protobuf: the wire
// types in capi/types carry cramberry tags alongside their json tags,
// and this codec plugs cramberry into grpc's encoding registry so both
// ends of a call agree on the serialization form. No code generation
// is involved anywhere in the transport.
package capigrpc

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"google.golang.org/grpc/encoding"
)

// CramberryCodec satisfies grpc/encoding.Codec. The zero value is
// ready to use: Dial forces it on every outgoing call, and servers
// resolve it from the registry by name.
type CramberryCodec struct{}

func (CramberryCodec) Name() string { return "cramberry" }

func (CramberryCodec) Marshal(v any) ([]byte, error) {
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("capi grpc: encode %T: %w", v, err)
	}
	return data, nil
}

func (CramberryCodec) Unmarshal(data []byte, v any) error {
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("capi grpc: decode %T: %w", v, err)
	}
	return nil
}

func init() {
	encoding.RegisterCodec(CramberryCodec{})
}
