// Package rpc defines the Connect service surface: procedure names, message
// types, and handler/client constructors.
//
// Messages are plain Go structs serialized by a JSON codec registered with
// Connect, so the wire format is ordinary application/json and no schema
// toolchain is involved. Handlers and clients are built with
// connect.NewUnaryHandler and connect.NewClient directly.
package rpc

import "encoding/json"

// codec implements connect.Codec over encoding/json. Registering it under
// the name "json" makes Connect route application/json bodies through it.
type codec struct{}

func (codec) Name() string { return "json" }

func (codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
