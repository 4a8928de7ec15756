// Package codec is the single place where the storage types are turned into bytes and back.
// Everything that is persisted goes through here so the wire format can be swapped in one spot.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	err := json.Unmarshal(bz, comp)
	if err != nil {
		return *comp, eris.Wrap(err, "")
	}
	return *comp, nil
}

// DecodeInto decodes bz into an existing value. v must be a non-nil pointer.
func DecodeInto(bz []byte, v any) error {
	if err := json.Unmarshal(bz, v); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

// RawMessage is a raw encoded value, used to defer decoding of a nested document.
type RawMessage = json.RawMessage
