package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecode_Response(t *testing.T) {
	data := `{"requestId":"abc-123","remoteResponseCode":"OK","data":{"power":"powerOn"}}`

	in := Decode([]byte(data))

	if in.Kind != KindResponse {
		t.Fatalf("Kind = %v, want response", in.Kind)
	}
	if in.Response.RequestID != "abc-123" {
		t.Errorf("RequestID = %q, want %q", in.Response.RequestID, "abc-123")
	}
	if in.Response.Code != "OK" {
		t.Errorf("Code = %q, want OK", in.Response.Code)
	}

	var payload struct {
		Power string `json:"power"`
	}
	if err := json.Unmarshal(in.Response.Data, &payload); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if payload.Power != "powerOn" {
		t.Errorf("Power = %q, want powerOn", payload.Power)
	}
}

func TestDecode_ResponseWithoutData(t *testing.T) {
	in := Decode([]byte(`{"requestId":"abc-123","remoteResponseCode":"OK"}`))

	if in.Kind != KindResponse {
		t.Fatalf("Kind = %v, want response", in.Kind)
	}
	if len(in.Response.Data) != 0 {
		t.Errorf("Data = %q, want empty", in.Response.Data)
	}
}

func TestDecode_StatusPush(t *testing.T) {
	in := Decode([]byte(`{"data":{"status":"powerOn"}}`))

	if in.Kind != KindStatus {
		t.Fatalf("Kind = %v, want status", in.Kind)
	}
	if in.Status.Status != "powerOn" {
		t.Errorf("Status = %q, want powerOn", in.Status.Status)
	}
}

func TestDecode_Unknown(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"no status field", `{"data":{"volume":3}}`},
		{"data not an object", `{"data":42}`},
		{"not json", `hello`},
		{"empty", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := Decode([]byte(tc.data))
			if in.Kind != KindUnknown {
				t.Errorf("Kind = %v, want unknown", in.Kind)
			}
			if string(in.Raw) != tc.data {
				t.Errorf("Raw = %q, want %q", in.Raw, tc.data)
			}
		})
	}
}

func TestCommand_Marshal(t *testing.T) {
	cmd := Command{
		Action:    ActionButtonEvent,
		Params:    map[string]any{"key": "volUp"},
		RequestID: "req-1",
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if parsed["action"] != "buttonEvent" {
		t.Errorf("action = %v, want buttonEvent", parsed["action"])
	}
	if parsed["requestId"] != "req-1" {
		t.Errorf("requestId = %v, want req-1", parsed["requestId"])
	}
	params, ok := parsed["params"].(map[string]any)
	if !ok || params["key"] != "volUp" {
		t.Errorf("params = %v, want key=volUp", parsed["params"])
	}
}

func TestCommand_MarshalOmitsEmptyParams(t *testing.T) {
	data, err := json.Marshal(Command{Action: ActionGetStatus, RequestID: "req-2"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := parsed["params"]; present {
		t.Errorf("params present in %s, want omitted", data)
	}
}
