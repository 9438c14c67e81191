package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSuccess_DefaultsToOK(t *testing.T) {
	r := Success(MsgUserFetched, 0, nil)
	if !r.Success || r.StatusCode != http.StatusOK {
		t.Fatalf("unexpected envelope: %+v", r)
	}
}

func TestError_DefaultsToInternal(t *testing.T) {
	r := Error(MsgDeleteFailed, 0)
	if r.Success || r.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected envelope: %+v", r)
	}
}

func TestEnvelope_OmitsEmptyData(t *testing.T) {
	b, err := json.Marshal(Success(MsgPasswordChanged, http.StatusOK, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["data"]; ok {
		t.Fatalf("data should be omitted, got %s", b)
	}
	if m["statusCode"] != float64(200) || m["success"] != true {
		t.Fatalf("unexpected body: %s", b)
	}
}
