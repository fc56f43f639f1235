package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/dvloznov/bank-sync/internal/xero"
)

// epochDatePattern matches the leading digit run of the legacy Xero date
// wrapper, e.g. "/Date(1743206400000+0000)/".
var epochDatePattern = regexp.MustCompile(`^/Date\((\d+)`)

// parseProviderDate turns either Xero date encoding into a calendar date.
// ISO-style strings ("2025-03-29T00:00:00") keep the date part and discard
// the time of day; epoch wrappers are milliseconds since the Unix epoch,
// interpreted as UTC and truncated to a date. Anything else, including the
// empty string, is nil. Never a fabricated default, never a panic.
func parseProviderDate(s string) *civil.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.Contains(s, "T") {
		t, err := time.Parse("2006-01-02T15:04:05", s)
		if err != nil {
			t, err = time.Parse(time.RFC3339, s)
		}
		if err != nil {
			return nil
		}
		d := civil.DateOf(t)
		return &d
	}

	if strings.HasPrefix(s, "/Date(") && strings.HasSuffix(s, ")/") {
		m := epochDatePattern.FindStringSubmatch(s)
		if m == nil {
			return nil
		}
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil
		}
		d := civil.DateOf(time.Unix(ms/1000, 0).UTC())
		return &d
	}

	return nil
}

// transactionDate picks the first parseable provider date. The two fields are
// mutually exclusive encodings of the same value; DateString is preferred
// because it is the one current Xero responses populate.
func transactionDate(txn xero.BankTransaction) *civil.Date {
	if d := parseProviderDate(txn.DateString); d != nil {
		return d
	}
	return parseProviderDate(txn.Date)
}

// signedAmount derives the stored amount from the provider total and type:
// SPEND is always negative, RECEIVE always positive, anything else passes
// through unchanged. The absolute-value clamp is deliberate: a provider that
// reports a positive total on a SPEND must still store a negative amount.
func signedAmount(total decimal.Decimal, txnType string) decimal.Decimal {
	switch txnType {
	case xero.TypeSpend:
		return total.Abs().Neg()
	case xero.TypeReceive:
		return total.Abs()
	default:
		return total
	}
}

// normalizeTransaction maps one remote transaction into the local record,
// minting a fresh local id and stamping bookkeeping fields.
func normalizeTransaction(txn xero.BankTransaction, tenantID, customerID string, now time.Time) domain.BankTransaction {
	currency := txn.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrencyCode
	}

	return domain.BankTransaction{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		CustomerID:    customerID,
		TransactionID: txn.BankTransactionID,

		BankAccountID:   txn.BankAccount.AccountID,
		BankAccountCode: txn.BankAccount.Code,
		BankAccountName: txn.BankAccount.Name,

		TransactionDate: transactionDate(txn),

		Amount:       signedAmount(txn.Total, txn.Type),
		SubTotal:     txn.SubTotal,
		TotalTax:     txn.TotalTax,
		Total:        txn.Total,
		CurrencyCode: currency,

		Description:     txn.Narration,
		Reference:       txn.Reference,
		Type:            txn.Type,
		Status:          txn.Status,
		LineAmountTypes: txn.LineAmountTypes,

		ContactID:   txn.Contact.ContactID,
		ContactName: txn.Contact.Name,

		IsReconciled:   txn.IsReconciled,
		HasAttachments: txn.HasAttachments,

		RawDateString:    txn.DateString,
		RawDateTimestamp: txn.Date,
		UpdatedDateUTC:   txn.UpdatedDateUTC,

		ImportedFrom:         domain.ImportedFromXero,
		ReconciliationStatus: domain.ReconciliationUnmatched,
		CreatedAt:            now,
	}
}
