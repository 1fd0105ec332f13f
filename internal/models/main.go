// Package models defines the core data structures for users, document drafts
// and submission results.
package models

import "strings"

// DocType identifies the kind of business document a submission produces.
// It is sent on the wire as the payload discriminator.
type DocType string

const (
	// Quotation is a priced offer with line items.
	Quotation DocType = "quotation"
	// AcknowledgementReceipt confirms a received payment.
	AcknowledgementReceipt DocType = "acknowledgement_receipt"
	// Invoice is reserved; no form produces it yet.
	Invoice DocType = "invoice"
	// PurchaseOrder is reserved; no form produces it yet.
	PurchaseOrder DocType = "purchase_order"
)

// AuthUser represents an authenticated staff member.
type AuthUser struct {
	// Email is the unique identity from the ID token.
	Email string
	// Name is the display name.
	Name string
	// Picture is the avatar URL, may be empty.
	Picture string
	// Branch is the authorization tag resolved from the allow-list.
	Branch string
}

// LineItem is one priced row of a quotation.
type LineItem struct {
	// ID is an opaque client-generated token, never reused.
	ID string
	// Name of the product or service.
	Name string
	// Size, free text, optional.
	Size string
	// Specifications, free text, optional.
	Specifications string
	// Qty is the ordered quantity.
	Qty int
	// UnitPrice is the price per unit.
	UnitPrice float64
}

// Complete reports whether the item qualifies for submission: a non-blank
// name, a positive quantity and a positive unit price. Incomplete items are
// dropped at submission time, not repaired.
func (it LineItem) Complete() bool {
	return strings.TrimSpace(it.Name) != "" && it.Qty > 0 && it.UnitPrice > 0
}

// QuotationDraft is the in-progress state of a quotation form.
type QuotationDraft struct {
	Date              string
	Salutation        string
	ClientName        string
	CompanyName       string
	Address           string
	Timetable         string
	Downpayment       string // one of DownpaymentOptions
	CustomDownpayment string // only meaningful when Downpayment == DownpaymentCustom
	Items             []LineItem
}

// ReceiptDraft is the in-progress state of an acknowledgement receipt form.
type ReceiptDraft struct {
	Date            string
	ReceivedDate    string
	ClientName      string
	PhoneNumber     string
	CompanyName     string
	Address         string
	Amount          string // free-form decimal text
	PaymentType     string
	ProjectType     string
	ModeOfPayment   string
	ReferenceNumber string // required unless ModeOfPayment is Cash
}

// SubmissionResult is the normalized outcome of one submission attempt.
// It stays in the form's result slot until the next attempt overwrites it.
type SubmissionResult struct {
	Success     bool   `json:"success"`
	DocumentURL string `json:"documentUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}

// DownpaymentCustom selects a free-text downpayment percentage.
const DownpaymentCustom = "custom"

// ModeCash is the mode of payment that needs no reference number.
const ModeCash = "Cash"

// Option lists rendered by form shells.
var (
	SalutationOptions    = []string{"Sir", "Ma'am", "Mr.", "Mrs.", "Ms."}
	DownpaymentOptions   = []string{"30", "50", "60", "70", "80", DownpaymentCustom}
	PaymentTypeOptions   = []string{"Down Payment", "Full Payment", "Balance Payment"}
	ModeOfPaymentOptions = []string{ModeCash, "Bank Transfer", "GCash", "Cheque"}
)
