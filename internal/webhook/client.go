// Package webhook is the HTTP client for the external document-generation
// webhook. It serializes validated drafts into the wire payload, posts them
// and normalizes responses into a SubmissionResult.
//
// Wire contract: a flat JSON object that always carries a docType
// discriminator, the submitting user's email and branch, the draft fields,
// and a client-generated ISO-8601 timestamp. Quotation line items travel
// with qty and unitPrice as text (integer text and two fixed decimals).
//
// Response contract: any non-2xx status is a StatusError. On 2xx, an empty
// body is bare success; a JSON body may carry documentUrl at top level or
// nested under "body" (checked in that order); a malformed body is treated
// as success without a document URL. The swallow is deliberate and pinned
// by tests: the webhook has already accepted the submission, and a response
// it garbles must not read as a failed submission.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/models"
)

// StatusError reports a non-2xx webhook response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with %d", e.StatusCode)
}

// Client posts submissions to a single fixed webhook URL.
type Client struct {
	url  string
	http *http.Client
	log  *zap.Logger
	now  func() time.Time
}

// NewClient constructs a Client for the given webhook URL.
func NewClient(url string, log *zap.Logger) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
		now:  time.Now,
	}
}

type wireItem struct {
	Name           string `json:"name"`
	Size           string `json:"size"`
	Specifications string `json:"specifications"`
	Qty            string `json:"qty"`
	UnitPrice      string `json:"unitPrice"`
}

type quotationPayload struct {
	DocType      models.DocType `json:"docType"`
	UserEmail    string         `json:"userEmail"`
	Branch       string         `json:"branch"`
	CreationDate string         `json:"creationDate"`
	ClientName   string         `json:"clientName"`
	CompanyName  string         `json:"companyName"`
	Address      string         `json:"address"`
	Salutation   string         `json:"salutation"`
	Timetable    string         `json:"timetable"`
	Downpayment  string         `json:"downpayment"`
	Items        []wireItem     `json:"items"`
	Timestamp    string         `json:"timestamp"`
}

type receiptPayload struct {
	DocType         models.DocType `json:"docType"`
	UserEmail       string         `json:"userEmail"`
	Branch          string         `json:"branch"`
	Date            string         `json:"date"`
	ReceivedDate    string         `json:"receivedDate"`
	ClientName      string         `json:"clientName"`
	PhoneNumber     string         `json:"phoneNumber"`
	CompanyName     string         `json:"companyName"`
	Address         string         `json:"address"`
	Amount          string         `json:"amount"`
	PaymentType     string         `json:"paymentType"`
	ProjectType     string         `json:"projectType"`
	ModeOfPayment   string         `json:"modeOfPayment"`
	ReferenceNumber string         `json:"referenceNumber"`
	Timestamp       string         `json:"timestamp"`
}

// SubmitQuotation posts a quotation draft.
func (c *Client) SubmitQuotation(ctx context.Context, draft models.QuotationDraft, userEmail, branch string) (models.SubmissionResult, error) {
	downpayment := draft.Downpayment
	if downpayment == models.DownpaymentCustom {
		downpayment = draft.CustomDownpayment
	}

	items := make([]wireItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, wireItem{
			Name:           it.Name,
			Size:           it.Size,
			Specifications: it.Specifications,
			Qty:            strconv.Itoa(it.Qty),
			UnitPrice:      strconv.FormatFloat(it.UnitPrice, 'f', 2, 64),
		})
	}

	return c.post(ctx, models.Quotation, quotationPayload{
		DocType:      models.Quotation,
		UserEmail:    userEmail,
		Branch:       branch,
		CreationDate: draft.Date,
		ClientName:   draft.ClientName,
		CompanyName:  draft.CompanyName,
		Address:      draft.Address,
		Salutation:   draft.Salutation,
		Timetable:    draft.Timetable,
		Downpayment:  downpayment,
		Items:        items,
		Timestamp:    c.now().UTC().Format(time.RFC3339),
	})
}

// SubmitReceipt posts an acknowledgement-receipt draft.
func (c *Client) SubmitReceipt(ctx context.Context, draft models.ReceiptDraft, userEmail, branch string) (models.SubmissionResult, error) {
	return c.post(ctx, models.AcknowledgementReceipt, receiptPayload{
		DocType:         models.AcknowledgementReceipt,
		UserEmail:       userEmail,
		Branch:          branch,
		Date:            draft.Date,
		ReceivedDate:    draft.ReceivedDate,
		ClientName:      draft.ClientName,
		PhoneNumber:     draft.PhoneNumber,
		CompanyName:     draft.CompanyName,
		Address:         draft.Address,
		Amount:          draft.Amount,
		PaymentType:     draft.PaymentType,
		ProjectType:     draft.ProjectType,
		ModeOfPayment:   draft.ModeOfPayment,
		ReferenceNumber: draft.ReferenceNumber,
		Timestamp:       c.now().UTC().Format(time.RFC3339),
	})
}

func (c *Client) post(ctx context.Context, docType models.DocType, payload any) (models.SubmissionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("webhook rejected submission",
			zap.String("docType", string(docType)),
			zap.Int("status", resp.StatusCode),
		)
		return models.SubmissionResult{}, &StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("read response: %w", err)
	}

	result := normalizeResponse(data)
	c.log.Info("submission accepted",
		zap.String("docType", string(docType)),
		zap.Bool("hasDocumentUrl", result.DocumentURL != ""),
	)
	return result, nil
}

func normalizeResponse(data []byte) models.SubmissionResult {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.SubmissionResult{Success: true}
	}

	var decoded struct {
		DocumentURL string `json:"documentUrl"`
		Body        struct {
			DocumentURL string `json:"documentUrl"`
		} `json:"body"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		// 2xx with an unreadable body still counts as an accepted
		// submission, just without a document URL.
		return models.SubmissionResult{Success: true}
	}

	url := decoded.DocumentURL
	if url == "" {
		url = decoded.Body.DocumentURL
	}
	return models.SubmissionResult{Success: true, DocumentURL: url}
}
