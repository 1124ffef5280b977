// Package upi builds UPI payment intent URIs.
package upi

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Scheme is the prefix every intent URI starts with.
	Scheme = "upi://pay"

	// Currency is the fixed currency code of every intent.
	Currency = "INR"

	// DefaultNote is used when the payment carries no note.
	DefaultNote = "UPI Payment"
)

// IntentParams are the inputs of an intent URI.
type IntentParams struct {
	UPIID          string
	Amount         decimal.Decimal
	PayerName      string
	Note           string
	TransactionRef string
}

// formEscaper adjusts QueryEscape output to the
// application/x-www-form-urlencoded serializer, which keeps '*' and escapes '~'.
var formEscaper = strings.NewReplacer("%2A", "*", "~", "%7E")

func formEscape(value string) string {
	return formEscaper.Replace(url.QueryEscape(value))
}

// BuildIntentURL returns the canonical intent URI for params. Fields always
// appear in the order pa, am, cu, tn, tr, then pn when a payer name is set.
func BuildIntentURL(params IntentParams) string {
	note := strings.TrimSpace(params.Note)
	if note == "" {
		note = DefaultNote
	}

	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString("?pa=")
	b.WriteString(formEscape(params.UPIID))
	b.WriteString("&am=")
	b.WriteString(params.Amount.StringFixed(2))
	b.WriteString("&cu=")
	b.WriteString(Currency)
	b.WriteString("&tn=")
	b.WriteString(formEscape(note))
	b.WriteString("&tr=")
	b.WriteString(formEscape(params.TransactionRef))

	if payer := strings.TrimSpace(params.PayerName); payer != "" {
		b.WriteString("&pn=")
		b.WriteString(formEscape(payer))
	}

	return b.String()
}
