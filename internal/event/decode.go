package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishes carry the
// typed struct already; payloads read back from the dead-letter file or the
// event log arrive as maps and are converted through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s %T: %w", errMsgDecodePayload, result, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%s %T: %w", errMsgDecodePayload, result, err)
	}
	return result, nil
}
