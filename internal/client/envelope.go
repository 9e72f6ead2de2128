package client

import (
	"encoding/json"
	"fmt"
)

// DecodeEnvelope decodes a response that is either `{"data": T}` or a
// bare T. The shape is validated: an object carrying a "data" key is
// always treated as the envelope, and a payload matching neither form
// is an error rather than a silently accepted guess.
func DecodeEnvelope[T any](body []byte) (T, error) {
	var zero T

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err == nil {
		if raw, ok := probe["data"]; ok {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return zero, fmt.Errorf("decode envelope data: %w", err)
			}
			return v, nil
		}
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero, fmt.Errorf("response is neither an envelope nor a bare payload: %w", err)
	}
	return v, nil
}
