package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCounter struct{ n int }

func (f fakeCounter) Len() int { return f.n }

func TestHealth_OK(t *testing.T) {
	h := HealthHandler(fakeCounter{n: 3})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var payload struct {
		Status string `json:"status"`
		Todos  int    `json:"todos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, w.Body.String())
	}
	if payload.Status != "ok" || payload.Todos != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestHealth_EmptyStore(t *testing.T) {
	h := HealthHandler(fakeCounter{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
