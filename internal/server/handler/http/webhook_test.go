package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeArchive implements Archive for testing.
type fakeArchive struct {
	saveErr    error
	gotDocType string
	gotEmail   string
	gotPayload []byte
	calls      int
}

func (f *fakeArchive) SaveSubmission(ctx context.Context, docType, userEmail, branch string, payload []byte, receivedAt time.Time) error {
	f.calls++
	f.gotDocType = docType
	f.gotEmail = userEmail
	f.gotPayload = payload
	return f.saveErr
}

func newTestHandler(archive Archive) *WebhookHandler {
	return &WebhookHandler{
		Archive:         archive,
		BaseDocumentURL: "https://docs.test/generated",
		Log:             zap.NewNop(),
	}
}

func TestWebhookHandler_Receive(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		archive      *fakeArchive
		expectedCode int
		wantURL      bool
	}{
		{
			name:         "valid quotation payload",
			body:         `{"docType":"quotation","userEmail":"a@b.c","branch":"test","items":[]}`,
			archive:      &fakeArchive{},
			expectedCode: http.StatusOK,
			wantURL:      true,
		},
		{
			name:         "invalid JSON",
			body:         `not a json`,
			archive:      &fakeArchive{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing docType",
			body:         `{"userEmail":"a@b.c"}`,
			archive:      &fakeArchive{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "archive failure does not fail the submission",
			body:         `{"docType":"acknowledgement_receipt","userEmail":"a@b.c"}`,
			archive:      &fakeArchive{saveErr: errors.New("db down")},
			expectedCode: http.StatusOK,
			wantURL:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/webhook/documents", bytes.NewBufferString(tt.body))
			h := newTestHandler(tt.archive)
			h.Receive(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if !tt.wantURL {
				return
			}

			var payload map[string]string
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.HasPrefix(payload["documentUrl"], "https://docs.test/generated/") {
				t.Errorf("unexpected documentUrl: %q", payload["documentUrl"])
			}
			if tt.archive.calls != 1 {
				t.Errorf("archive called %d times; want 1", tt.archive.calls)
			}
		})
	}
}

func TestWebhookHandler_ReceiveWithoutArchive(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhook/documents", bytes.NewBufferString(`{"docType":"quotation"}`))
	h := newTestHandler(nil)
	h.Receive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestWebhookHandler_ArchivesRawPayload(t *testing.T) {
	archive := &fakeArchive{}
	body := `{"docType":"quotation","userEmail":"a@b.c","branch":"north","clientName":"Juan"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhook/documents", bytes.NewBufferString(body))
	newTestHandler(archive).Receive(rec, req)

	if archive.gotDocType != "quotation" || archive.gotEmail != "a@b.c" {
		t.Errorf("unexpected archived metadata: %q %q", archive.gotDocType, archive.gotEmail)
	}
	var archived map[string]any
	if err := json.Unmarshal(archive.gotPayload, &archived); err != nil {
		t.Fatalf("archived payload is not JSON: %v", err)
	}
	if archived["clientName"] != "Juan" {
		t.Errorf("archived payload lost fields: %v", archived)
	}
}

func TestRouter_ContentTypeAndPath(t *testing.T) {
	router := NewRouter(newTestHandler(nil), zap.NewNop())
	srv := httptest.NewServer(router)
	defer srv.Close()

	tests := []struct {
		name         string
		path         string
		contentType  string
		expectedCode int
	}{
		{
			name:         "json post on any webhook path",
			path:         "/webhook/local-host-test",
			contentType:  "application/json",
			expectedCode: http.StatusOK,
		},
		{
			name:         "non-json content type rejected",
			path:         "/webhook/documents",
			contentType:  "text/plain",
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "unknown path",
			path:         "/elsewhere",
			contentType:  "application/json",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, tt.contentType, strings.NewReader(`{"docType":"quotation"}`))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.expectedCode {
				t.Errorf("status = %d; want %d", resp.StatusCode, tt.expectedCode)
			}
		})
	}
}
