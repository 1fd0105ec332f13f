// Package http provides the HTTP handlers for the stub document webhook,
// a local stand-in for the external generation service used in development.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Archive persists received submissions. Optional; the stub works without it.
type Archive interface {
	// SaveSubmission stores one received payload.
	SaveSubmission(ctx context.Context, docType, userEmail, branch string, payload []byte, receivedAt time.Time) error
}

// WebhookHandler accepts document submissions and answers with a generated
// document URL, the way the production webhook does.
type WebhookHandler struct {
	// Archive records submissions when non-nil.
	Archive Archive
	// BaseDocumentURL prefixes returned document URLs.
	BaseDocumentURL string
	// Log is the structured logger for received submissions.
	Log *zap.Logger
}

// submission is the subset of the wire payload the stub inspects; the rest
// is archived verbatim.
type submission struct {
	DocType   string `json:"docType"`
	UserEmail string `json:"userEmail"`
	Branch    string `json:"branch"`
	Timestamp string `json:"timestamp"`
}

// Receive handles a submission POST. It expects a JSON body carrying a
// docType discriminator, archives it best-effort, and responds with a
// document URL. An archive failure is logged but does not fail the
// submission.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var sub submission
	if err := json.Unmarshal(raw, &sub); err != nil || sub.DocType == "" {
		http.Error(w, "missing docType", http.StatusBadRequest)
		return
	}

	h.Log.Info("submission received",
		zap.String("docType", sub.DocType),
		zap.String("userEmail", sub.UserEmail),
		zap.String("branch", sub.Branch),
	)

	if h.Archive != nil {
		if err := h.Archive.SaveSubmission(r.Context(), sub.DocType, sub.UserEmail, sub.Branch, raw, time.Now()); err != nil {
			h.Log.Error("failed to archive submission", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"documentUrl": fmt.Sprintf("%s/%s/%s.pdf", h.BaseDocumentURL, sub.DocType, uuid.NewString()),
	})
}
