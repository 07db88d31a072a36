// Package proto defines the ledger's gRPC contract: request and response
// messages, the service descriptor and typed client and server bindings.
//
// Messages are plain Go structs that encode themselves in protobuf wire
// format. The codec is registered under its own content subtype, so clients
// must call with grpc.CallContentSubtype(CodecName) (NewLedgerServiceClient
// does this).
package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype the ledger service speaks.
const CodecName = "ledgerpb"

// Message is implemented by every ledger request and response.
type Message interface {
	MarshalWire(b []byte) []byte
	// UnmarshalWire decodes into a zero message. Unknown fields are skipped.
	UnmarshalWire(b []byte) error
}

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("ledgerpb: cannot marshal %T", v)
	}
	return m.MarshalWire(nil), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("ledgerpb: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (wireCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(wireCodec{})
}
