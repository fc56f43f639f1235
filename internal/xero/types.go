package xero

import "github.com/shopspring/decimal"

// Transaction types with sign-normalization rules. Any other value is passed
// through with the provider-reported total untouched.
const (
	TypeSpend   = "SPEND"
	TypeReceive = "RECEIVE"
)

// Contact is the counterparty attached to a bank transaction.
type Contact struct {
	ContactID string `json:"ContactID"`
	Name      string `json:"Name"`
}

// BankAccount identifies the account a transaction was booked against.
type BankAccount struct {
	AccountID string `json:"AccountID"`
	Code      string `json:"Code"`
	Name      string `json:"Name"`
}

// BankTransaction is one transaction as returned by the Xero
// BankTransactions endpoint. Fields mirror the wire format; normalization
// into the local model happens in the pipeline.
type BankTransaction struct {
	BankTransactionID string `json:"BankTransactionID"`
	Type              string `json:"Type"`
	Status            string `json:"Status"`
	Reference         string `json:"Reference"`
	Narration         string `json:"Narration"`
	LineAmountTypes   string `json:"LineAmountTypes"`

	SubTotal     decimal.Decimal `json:"SubTotal"`
	TotalTax     decimal.Decimal `json:"TotalTax"`
	Total        decimal.Decimal `json:"Total"`
	CurrencyCode string          `json:"CurrencyCode"`

	// DateString carries an ISO-style date ("2025-03-29T00:00:00"); Date
	// carries the legacy epoch wrapper ("/Date(1743206400000+0000)/").
	// Either may be absent.
	DateString     string `json:"DateString"`
	Date           string `json:"Date"`
	UpdatedDateUTC string `json:"UpdatedDateUTC"`

	IsReconciled   bool `json:"IsReconciled"`
	HasAttachments bool `json:"HasAttachments"`

	Contact     Contact     `json:"Contact"`
	BankAccount BankAccount `json:"BankAccount"`
}

// Token is the result of a refresh-token exchange. The refresh token may or
// may not differ from the one sent; callers detect rotation by comparing.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// connection is one element of the connections-list response.
type connection struct {
	TenantID string `json:"tenantId"`
}

// bankTransactionsResponse is the envelope of the BankTransactions endpoint.
type bankTransactionsResponse struct {
	BankTransactions []BankTransaction `json:"BankTransactions"`
}
