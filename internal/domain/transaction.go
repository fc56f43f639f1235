package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Source / bookkeeping constants stamped onto every stored transaction.
const (
	// ImportedFromXero tags rows written by this integration so downstream
	// reconciliation can tell sources apart.
	ImportedFromXero = "XERO"

	// ReconciliationUnmatched is the initial reconciliation state; matching
	// happens in a downstream system, never here.
	ReconciliationUnmatched = "UNMATCHED"

	// DefaultCurrencyCode is used when the provider omits CurrencyCode.
	DefaultCurrencyCode = "AUD"
)

// BankTransaction is one normalized bank transaction owned by this service.
// Exactly one row exists per (TenantID, CustomerID, TransactionID); rows are
// immutable after insert, so repeated syncs of the same remote transaction
// are no-ops.
type BankTransaction struct {
	ID            string // locally generated UUID, distinct from TransactionID
	TenantID      string
	CustomerID    string
	TransactionID string // provider-side BankTransactionID

	BankAccountID   string
	BankAccountCode string
	BankAccountName string

	// TransactionDate is the provider date truncated to a calendar day.
	// Nil when the provider sent nothing parseable; never a fabricated default.
	TransactionDate *civil.Date

	// Amount is the signed value: negative for SPEND, positive for RECEIVE,
	// raw provider total for any other type.
	Amount       decimal.Decimal
	SubTotal     decimal.Decimal
	TotalTax     decimal.Decimal
	Total        decimal.Decimal // as reported, sign untouched
	CurrencyCode string

	Description     string // provider Narration
	Reference       string
	Type            string // SPEND, RECEIVE, or any future provider type
	Status          string
	LineAmountTypes string

	ContactID   string
	ContactName string

	IsReconciled   bool
	HasAttachments bool

	// Raw provider date fields, kept verbatim for diagnostics.
	RawDateString    string
	RawDateTimestamp string
	UpdatedDateUTC   string

	ImportedFrom         string
	ReconciliationStatus string
	CreatedAt            time.Time
}
