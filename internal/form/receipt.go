package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/models"
)

// ReceiptSubmitter sends a validated acknowledgement-receipt draft to the
// document webhook and normalizes the outcome.
type ReceiptSubmitter interface {
	SubmitReceipt(ctx context.Context, draft models.ReceiptDraft, userEmail, branch string) (models.SubmissionResult, error)
}

// ReceiptForm manages one acknowledgement-receipt draft through editing,
// validation and submission.
type ReceiptForm struct {
	submitter ReceiptSubmitter
	log       *zap.Logger

	mu       sync.Mutex
	draft    models.ReceiptDraft
	result   *models.SubmissionResult
	inFlight bool
}

// NewReceiptForm returns a form holding a fresh draft.
func NewReceiptForm(submitter ReceiptSubmitter, log *zap.Logger) *ReceiptForm {
	return &ReceiptForm{
		submitter: submitter,
		log:       log,
		draft:     NewReceiptDraft(),
	}
}

// NewReceiptDraft returns the initial empty draft: both dates set to today,
// default payment type and cash mode.
func NewReceiptDraft() models.ReceiptDraft {
	return models.ReceiptDraft{
		Date:          today(),
		ReceivedDate:  today(),
		PaymentType:   "Down Payment",
		ModeOfPayment: models.ModeCash,
	}
}

// Draft returns a copy of the current draft.
func (f *ReceiptForm) Draft() models.ReceiptDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Result returns the outcome of the last submission attempt, or nil when
// none has run yet.
func (f *ReceiptForm) Result() *models.SubmissionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result == nil {
		return nil
	}
	res := *f.result
	return &res
}

// Field setters. Each replaces exactly one field on a copied draft.

func (f *ReceiptForm) SetDate(v string) {
	f.update(func(d *models.ReceiptDraft) { d.Date = v })
}

func (f *ReceiptForm) SetReceivedDate(v string) {
	f.update(func(d *models.ReceiptDraft) { d.ReceivedDate = v })
}

func (f *ReceiptForm) SetClientName(v string) {
	f.update(func(d *models.ReceiptDraft) { d.ClientName = v })
}

func (f *ReceiptForm) SetPhoneNumber(v string) {
	f.update(func(d *models.ReceiptDraft) { d.PhoneNumber = v })
}

func (f *ReceiptForm) SetCompanyName(v string) {
	f.update(func(d *models.ReceiptDraft) { d.CompanyName = v })
}

func (f *ReceiptForm) SetAddress(v string) {
	f.update(func(d *models.ReceiptDraft) { d.Address = v })
}

func (f *ReceiptForm) SetAmount(v string) {
	f.update(func(d *models.ReceiptDraft) { d.Amount = v })
}

func (f *ReceiptForm) SetPaymentType(v string) {
	f.update(func(d *models.ReceiptDraft) { d.PaymentType = v })
}

func (f *ReceiptForm) SetProjectType(v string) {
	f.update(func(d *models.ReceiptDraft) { d.ProjectType = v })
}

func (f *ReceiptForm) SetReferenceNumber(v string) {
	f.update(func(d *models.ReceiptDraft) { d.ReferenceNumber = v })
}

// SetModeOfPayment switches the mode of payment. Switching to cash clears
// any previously entered reference number.
func (f *ReceiptForm) SetModeOfPayment(v string) {
	f.update(func(d *models.ReceiptDraft) {
		d.ModeOfPayment = v
		if v == models.ModeCash {
			d.ReferenceNumber = ""
		}
	})
}

func (f *ReceiptForm) update(mutate func(*models.ReceiptDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.draft
	mutate(&next)
	f.draft = next
}

// RequiresReference reports whether the current mode of payment needs a
// reference number. Cash and an unset mode do not.
func (f *ReceiptForm) RequiresReference() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return requiresReference(f.draft.ModeOfPayment)
}

func requiresReference(mode string) bool {
	return mode != "" && mode != models.ModeCash
}

// Validate reports the first blocking error, checking client name, phone
// number, amount, project type and then the conditional reference number.
func (f *ReceiptForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validateReceipt(f.draft)
}

func validateReceipt(d models.ReceiptDraft) error {
	if isBlank(d.ClientName) {
		return &ValidationError{Field: "clientName", Message: "Client name is required."}
	}
	if isBlank(d.PhoneNumber) {
		return &ValidationError{Field: "phoneNumber", Message: "Phone number is required."}
	}
	if isBlank(d.Amount) {
		return &ValidationError{Field: "amount", Message: "Amount is required."}
	}
	if isBlank(d.ProjectType) {
		return &ValidationError{Field: "projectType", Message: "Project type is required."}
	}
	if requiresReference(d.ModeOfPayment) && isBlank(d.ReferenceNumber) {
		return &ValidationError{
			Field:   "referenceNumber",
			Message: "Reference number is required for this payment mode.",
		}
	}
	return nil
}

// Submit validates the draft and hands it to the submitter. Validation and
// transport failures land in the result slot; the draft resets only on
// success. A second call while one submission is pending returns
// ErrSubmissionInFlight without touching the result.
func (f *ReceiptForm) Submit(ctx context.Context, userEmail, branch string) (models.SubmissionResult, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return models.SubmissionResult{}, ErrSubmissionInFlight
	}
	if err := validateReceipt(f.draft); err != nil {
		res := models.SubmissionResult{Success: false, Error: err.Error()}
		f.result = &res
		f.mu.Unlock()
		return res, nil
	}

	outbound := f.draft
	f.inFlight = true
	f.result = nil
	f.mu.Unlock()

	res, err := f.submitter.SubmitReceipt(ctx, outbound, userEmail, branch)
	if err != nil {
		f.log.Warn("receipt submission failed", zap.Error(err))
		res = models.SubmissionResult{Success: false, Error: errorMessage(err)}
	}

	f.mu.Lock()
	f.inFlight = false
	f.result = &res
	if res.Success {
		f.draft = NewReceiptDraft()
	}
	f.mu.Unlock()
	return res, nil
}
