package pipeline

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/dvloznov/bank-sync/internal/xero"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		txnType string
		want    string
	}{
		{"spend is negative", "150.00", "SPEND", "-150.00"},
		{"spend with negative total stays negative", "-150.00", "SPEND", "-150.00"},
		{"receive is positive", "75.50", "RECEIVE", "75.50"},
		{"receive with negative total becomes positive", "-75.50", "RECEIVE", "75.50"},
		{"other type passes through", "40", "OVERPAYMENT", "40"},
		{"other type keeps negative sign", "-40", "PREPAYMENT", "-40"},
		{"unknown future type passes through", "12.34", "SOMETHING-NEW", "12.34"},
		{"zero spend", "0", "SPEND", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := decimal.NewFromString(tt.total)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)

			got := signedAmount(total, tt.txnType)
			assert.True(t, got.Equal(want), "signedAmount(%s, %s) = %s, want %s", tt.total, tt.txnType, got, want)
		})
	}
}

func TestParseProviderDate(t *testing.T) {
	date := func(y int, m time.Month, d int) *civil.Date {
		cd := civil.Date{Year: y, Month: m, Day: d}
		return &cd
	}

	tests := []struct {
		name  string
		input string
		want  *civil.Date
	}{
		{"iso datetime", "2025-03-29T00:00:00", date(2025, time.March, 29)},
		{"iso datetime discards time of day", "2025-03-29T23:59:59", date(2025, time.March, 29)},
		{"epoch wrapper with offset", "/Date(1743206400000+0000)/", date(2025, time.March, 29)},
		{"epoch wrapper without offset", "/Date(1743206400000)/", date(2025, time.March, 29)},
		{"empty string", "", nil},
		{"whitespace only", "   ", nil},
		{"garbage", "garbage", nil},
		{"unparseable iso-ish", "2025-99-99T00:00:00", nil},
		{"wrapper without digits", "/Date(abc)/", nil},
		{"wrapper missing suffix", "/Date(1743206400000", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseProviderDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseProviderDate_Equivalence(t *testing.T) {
	// The two encodings of the same UTC midnight must resolve to the same
	// calendar date.
	iso := parseProviderDate("2025-03-29T00:00:00")
	epoch := parseProviderDate("/Date(1743206400000+0000)/")

	require.NotNil(t, iso)
	require.NotNil(t, epoch)
	assert.Equal(t, *iso, *epoch)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 29}, *iso)
}

func TestTransactionDate_Fallback(t *testing.T) {
	txn := xero.BankTransaction{
		DateString: "",
		Date:       "/Date(1743206400000+0000)/",
	}
	got := transactionDate(txn)
	require.NotNil(t, got)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 29}, *got)

	txn.DateString = "2024-01-02T00:00:00"
	got = transactionDate(txn)
	require.NotNil(t, got)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 2}, *got)
}

func TestNormalizeTransaction(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	txn := xero.BankTransaction{
		BankTransactionID: "tx-1",
		Type:              "SPEND",
		Status:            "AUTHORISED",
		Reference:         "INV-42",
		Narration:         "Office chairs",
		LineAmountTypes:   "Inclusive",
		SubTotal:          decimal.RequireFromString("136.36"),
		TotalTax:          decimal.RequireFromString("13.64"),
		Total:             decimal.RequireFromString("150.00"),
		CurrencyCode:      "NZD",
		DateString:        "2025-03-29T00:00:00",
		Date:              "/Date(1743206400000+0000)/",
		UpdatedDateUTC:    "/Date(1743210000000+0000)/",
		IsReconciled:      true,
		Contact:           xero.Contact{ContactID: "c-9", Name: "Acme Supplies"},
		BankAccount:       xero.BankAccount{AccountID: "a-1", Code: "090", Name: "Business Cheque"},
	}

	rec := normalizeTransaction(txn, "tenant-1", "customer-1", now)

	assert.NotEmpty(t, rec.ID)
	assert.NotEqual(t, txn.BankTransactionID, rec.ID)
	assert.Equal(t, "tenant-1", rec.TenantID)
	assert.Equal(t, "customer-1", rec.CustomerID)
	assert.Equal(t, "tx-1", rec.TransactionID)

	require.NotNil(t, rec.TransactionDate)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 29}, *rec.TransactionDate)

	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("-150.00")))
	assert.True(t, rec.Total.Equal(decimal.RequireFromString("150.00")), "reported total keeps its sign")
	assert.Equal(t, "NZD", rec.CurrencyCode)
	assert.Equal(t, "Office chairs", rec.Description)
	assert.Equal(t, "Acme Supplies", rec.ContactName)
	assert.Equal(t, "Business Cheque", rec.BankAccountName)

	assert.Equal(t, "2025-03-29T00:00:00", rec.RawDateString)
	assert.Equal(t, "/Date(1743206400000+0000)/", rec.RawDateTimestamp)
	assert.Equal(t, domain.ImportedFromXero, rec.ImportedFrom)
	assert.Equal(t, domain.ReconciliationUnmatched, rec.ReconciliationStatus)
	assert.Equal(t, now, rec.CreatedAt)
}

func TestNormalizeTransaction_Defaults(t *testing.T) {
	rec := normalizeTransaction(xero.BankTransaction{
		BankTransactionID: "tx-2",
		Type:              "RECEIVE",
		Total:             decimal.RequireFromString("10"),
	}, "tenant-1", "customer-1", time.Now())

	assert.Equal(t, domain.DefaultCurrencyCode, rec.CurrencyCode)
	assert.Nil(t, rec.TransactionDate)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("10")))
}

func TestNormalizeTransaction_FreshIDPerCall(t *testing.T) {
	txn := xero.BankTransaction{BankTransactionID: "tx-3"}
	a := normalizeTransaction(txn, "t", "c", time.Now())
	b := normalizeTransaction(txn, "t", "c", time.Now())
	assert.NotEqual(t, a.ID, b.ID)
}
