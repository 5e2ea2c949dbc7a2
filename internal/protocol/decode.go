package protocol

import "encoding/json"

// probe is the schema-tolerant view of an inbound frame: every field is
// optional, classification happens after the parse.
type probe struct {
	RequestID string          `json:"requestId"`
	Code      string          `json:"remoteResponseCode"`
	Data      json.RawMessage `json:"data"`
}

type statusData struct {
	Status string `json:"status"`
}

// Decode classifies an inbound frame into one of the known shapes. It never
// fails: frames that do not parse or do not match any shape come back as
// KindUnknown for the caller to log and discard.
func Decode(data []byte) Inbound {
	in := Inbound{Raw: data}

	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return in
	}

	if p.RequestID != "" {
		in.Kind = KindResponse
		in.Response = Response{
			RequestID: p.RequestID,
			Code:      p.Code,
			Data:      p.Data,
		}
		return in
	}

	if len(p.Data) > 0 {
		var sd statusData
		if err := json.Unmarshal(p.Data, &sd); err == nil && sd.Status != "" {
			in.Kind = KindStatus
			in.Status = StatusEvent{Status: sd.Status}
			return in
		}
	}

	return in
}
