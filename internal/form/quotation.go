package form

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/models"
)

// QuotationSubmitter sends a validated quotation draft to the document
// webhook and normalizes the outcome.
type QuotationSubmitter interface {
	SubmitQuotation(ctx context.Context, draft models.QuotationDraft, userEmail, branch string) (models.SubmissionResult, error)
}

// QuotationForm manages one quotation draft through editing, validation
// and submission.
type QuotationForm struct {
	submitter QuotationSubmitter
	log       *zap.Logger

	mu       sync.Mutex
	draft    models.QuotationDraft
	result   *models.SubmissionResult
	inFlight bool
}

// NewQuotationForm returns a form holding a fresh draft.
func NewQuotationForm(submitter QuotationSubmitter, log *zap.Logger) *QuotationForm {
	return &QuotationForm{
		submitter: submitter,
		log:       log,
		draft:     NewQuotationDraft(),
	}
}

// NewQuotationDraft returns the initial empty draft: today's date, default
// salutation and downpayment, and a single blank line item. The item list
// never goes empty while the form is being edited.
func NewQuotationDraft() models.QuotationDraft {
	return models.QuotationDraft{
		Date:        today(),
		Salutation:  "Sir",
		Downpayment: "50",
		Items:       []models.LineItem{newLineItem()},
	}
}

func newLineItem() models.LineItem {
	return models.LineItem{ID: uuid.NewString()}
}

// Draft returns a copy of the current draft.
func (f *QuotationForm) Draft() models.QuotationDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneQuotation(f.draft)
}

// Result returns the outcome of the last submission attempt, or nil when
// none has run yet. It stays put until the next attempt overwrites it.
func (f *QuotationForm) Result() *models.SubmissionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result == nil {
		return nil
	}
	res := *f.result
	return &res
}

// Totals derives the current money values from the draft.
func (f *QuotationForm) Totals() Totals {
	f.mu.Lock()
	draft := cloneQuotation(f.draft)
	f.mu.Unlock()
	percent := DownpaymentPercent(draft.Downpayment, draft.CustomDownpayment)
	return ComputeTotals(draft.Items, percent)
}

// Field setters. Each replaces exactly one field on a copied draft.

func (f *QuotationForm) SetDate(v string) {
	f.update(func(d *models.QuotationDraft) { d.Date = v })
}

func (f *QuotationForm) SetSalutation(v string) {
	f.update(func(d *models.QuotationDraft) { d.Salutation = v })
}

func (f *QuotationForm) SetClientName(v string) {
	f.update(func(d *models.QuotationDraft) { d.ClientName = v })
}

func (f *QuotationForm) SetCompanyName(v string) {
	f.update(func(d *models.QuotationDraft) { d.CompanyName = v })
}

func (f *QuotationForm) SetAddress(v string) {
	f.update(func(d *models.QuotationDraft) { d.Address = v })
}

func (f *QuotationForm) SetTimetable(v string) {
	f.update(func(d *models.QuotationDraft) { d.Timetable = v })
}

func (f *QuotationForm) SetDownpayment(v string) {
	f.update(func(d *models.QuotationDraft) { d.Downpayment = v })
}

func (f *QuotationForm) SetCustomDownpayment(v string) {
	f.update(func(d *models.QuotationDraft) { d.CustomDownpayment = v })
}

func (f *QuotationForm) update(mutate func(*models.QuotationDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := cloneQuotation(f.draft)
	mutate(&next)
	f.draft = next
}

// Line-item setters replace one field of the item with the given ID and
// are a no-op when the ID is unknown.

func (f *QuotationForm) SetItemName(id, v string) {
	f.updateItem(id, func(it *models.LineItem) { it.Name = v })
}
func (f *QuotationForm) SetItemSize(id, v string) {
	f.updateItem(id, func(it *models.LineItem) { it.Size = v })
}
func (f *QuotationForm) SetItemSpecifications(id, v string) {
	f.updateItem(id, func(it *models.LineItem) { it.Specifications = v })
}
func (f *QuotationForm) SetItemQty(id string, v int) {
	f.updateItem(id, func(it *models.LineItem) { it.Qty = v })
}
func (f *QuotationForm) SetItemUnitPrice(id string, v float64) {
	f.updateItem(id, func(it *models.LineItem) { it.UnitPrice = v })
}

func (f *QuotationForm) updateItem(id string, mutate func(*models.LineItem)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := cloneQuotation(f.draft)
	for i := range next.Items {
		if next.Items[i].ID == id {
			mutate(&next.Items[i])
			f.draft = next
			return
		}
	}
}

// AddItem appends a fresh blank line item and returns it.
func (f *QuotationForm) AddItem() models.LineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := cloneQuotation(f.draft)
	item := newLineItem()
	next.Items = append(next.Items, item)
	f.draft = next
	return item
}

// RemoveItem drops the item with the given ID. It refuses when only one
// item remains or the ID is unknown, reporting false.
func (f *QuotationForm) RemoveItem(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.draft.Items) <= 1 {
		return false
	}
	next := cloneQuotation(f.draft)
	for i := range next.Items {
		if next.Items[i].ID == id {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
			f.draft = next
			return true
		}
	}
	return false
}

// FillMockData loads a sample quotation and drops the last result.
// Shells gate this behind the user's branch tag.
func (f *QuotationForm) FillMockData() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.QuotationDraft{
		Date:        today(),
		Salutation:  "Sir",
		ClientName:  "Juan Dela Cruz",
		CompanyName: "ABC Marketing Corp",
		Address:     "123 Rizal Avenue, Makati City",
		Timetable:   "14-21",
		Downpayment: "50",
		Items: []models.LineItem{
			{
				ID:             uuid.NewString(),
				Name:           "WAREHOUSE LABELS",
				Size:           "4 x 6 inches",
				Specifications: "ACRYLIC 3MM THICKNESS, UV PRINTED, WITH DOUBLE-SIDED TAPE",
				Qty:            50,
				UnitPrice:      125,
			},
			{
				ID:             uuid.NewString(),
				Name:           "OFFICE SIGNAGE",
				Size:           "24 x 36 inches",
				Specifications: "SINTRA BOARD 5MM, FULL COLOR PRINT, MATTE LAMINATED",
				Qty:            10,
				UnitPrice:      450,
			},
		},
	}
	f.result = nil
}

// Validate reports the first blocking error: a blank client name, then the
// absence of any complete line item.
func (f *QuotationForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validateQuotation(f.draft)
}

func validateQuotation(d models.QuotationDraft) error {
	if isBlank(d.ClientName) {
		return &ValidationError{Field: "clientName", Message: "Client name is required."}
	}
	for _, it := range d.Items {
		if it.Complete() {
			return nil
		}
	}
	return &ValidationError{
		Field:   "items",
		Message: "At least one complete item is required (name, quantity, and price).",
	}
}

// Submit validates the draft, filters it down to complete line items and
// hands it to the submitter. Validation and transport failures land in the
// result slot; the draft resets only on success. A second call while one
// submission is pending returns ErrSubmissionInFlight without touching
// the result.
func (f *QuotationForm) Submit(ctx context.Context, userEmail, branch string) (models.SubmissionResult, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return models.SubmissionResult{}, ErrSubmissionInFlight
	}
	if err := validateQuotation(f.draft); err != nil {
		res := models.SubmissionResult{Success: false, Error: err.Error()}
		f.result = &res
		f.mu.Unlock()
		return res, nil
	}

	outbound := cloneQuotation(f.draft)
	complete := outbound.Items[:0]
	for _, it := range outbound.Items {
		if it.Complete() {
			complete = append(complete, it)
		}
	}
	outbound.Items = complete

	f.inFlight = true
	f.result = nil
	f.mu.Unlock()

	res, err := f.submitter.SubmitQuotation(ctx, outbound, userEmail, branch)
	if err != nil {
		f.log.Warn("quotation submission failed", zap.Error(err))
		res = models.SubmissionResult{Success: false, Error: errorMessage(err)}
	}

	f.mu.Lock()
	f.inFlight = false
	f.result = &res
	if res.Success {
		f.draft = NewQuotationDraft()
	}
	f.mu.Unlock()
	return res, nil
}

func cloneQuotation(d models.QuotationDraft) models.QuotationDraft {
	next := d
	next.Items = make([]models.LineItem, len(d.Items))
	copy(next.Items, d.Items)
	return next
}
