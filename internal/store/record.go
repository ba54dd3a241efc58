package store

import (
	"encoding/json"
	"fmt"
)

// recordVersion tags every stored value so future schema changes can
// migrate on read instead of breaking load.
const recordVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

func marshalRecord(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{V: recordVersion, Data: data})
}

// unmarshalRecord decodes a versioned envelope into out. Any parse
// failure or unknown version is reported as ErrCorruptRecord; callers
// discard the single record and treat it as absent.
func unmarshalRecord(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if env.V != recordVersion {
		return fmt.Errorf("%w: unsupported record version %d", ErrCorruptRecord, env.V)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}
