package vetting

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type CheckRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"` // free text; every URL in it is checked
}

type CheckResponse struct {
	Assessments []Assessment `json:"assessments"`
	Timestamp   string       `json:"timestamp"`
}

// CheckHandler serves POST /check.
type CheckHandler struct {
	assessor *Assessor
	maxURLs  int
	log      *zap.SugaredLogger
}

func NewCheckHandler(a *Assessor, maxURLs int, log *zap.SugaredLogger) *CheckHandler {
	return &CheckHandler{assessor: a, maxURLs: maxURLs, log: log}
}

func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var urls []string
	if req.URL != "" {
		urls = append(urls, req.URL)
	}
	if req.Text != "" {
		urls = append(urls, ExtractURLs(req.Text, h.maxURLs)...)
	}
	if len(urls) == 0 {
		writeError(w, "url or text with a link required", http.StatusBadRequest)
		return
	}

	resp := CheckResponse{
		Assessments: h.assessor.AssessAll(r.Context(), urls),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Warnf("[CHECK] encode response: %v", err)
		return
	}
	h.log.Infof("[CHECK] Assessed %d url(s)", len(urls))
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
