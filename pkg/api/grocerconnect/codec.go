package grocerconnect

import "encoding/json"

// JSONCodec marshals the plain api structs. It is registered under the
// name "json", so it serves application/json and application/connect+json.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
