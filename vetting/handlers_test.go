package vetting

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestCheckHandler(t *testing.T) {
	a, _, _ := newTestAssessor(oldDomain(), validCert())
	h := NewCheckHandler(a, 5, zap.NewNop().Sugar())

	tests := []struct {
		name   string
		body   string
		status int
		urls   []string
	}{
		{"single_url", `{"url":"http://192.168.1.1/login"}`, http.StatusOK, []string{"http://192.168.1.1/login"}},
		{"text", `{"text":"compare https://example.com and www.my-bank.com"}`, http.StatusOK, []string{"https://example.com", "www.my-bank.com"}},
		{"no_links", `{"text":"hello there"}`, http.StatusBadRequest, nil},
		{"bad_json", `{"url":`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if tt.status != http.StatusOK {
				if !strings.Contains(rr.Body.String(), `"error"`) {
					t.Errorf("expected error body, got %s", rr.Body.String())
				}
				return
			}

			var resp CheckResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Assessments) != len(tt.urls) {
				t.Fatalf("expected %d assessments, got %d", len(tt.urls), len(resp.Assessments))
			}
			for i, u := range tt.urls {
				if resp.Assessments[i].URL != u {
					t.Errorf("assessment %d: got %s, want %s", i, resp.Assessments[i].URL, u)
				}
			}
		})
	}
}
