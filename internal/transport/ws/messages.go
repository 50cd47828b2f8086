package ws

import (
	"encoding/json"

	"codepair/internal/model"
)

func encodeMessage(event string, seq int64, payload interface{}) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return json.Marshal(model.Envelope{Event: event, Seq: seq, Payload: raw})
}
