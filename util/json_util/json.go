// Package json_util holds JSON helpers shared by the web layer.
package json_util

import (
	"errors"
)

// RawMessage passes stored JSON text through to responses untouched.
// Unlike encoding/json's RawMessage, an empty value marshals as "null"
// instead of breaking the document.
type RawMessage []byte

func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("json_util.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[0:0], data...)
	return nil
}
