package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tag is the sign classification of a transaction row.
type Tag string

const (
	TagSpend       Tag = "spend"
	TagCredit      Tag = "credit"
	TagTransfer    Tag = "transfer"
	TagInterest    Tag = "interest"
	TagCardPayment Tag = "card_payment"
)

// Transaction is one normalized statement entry. It is created per
// qualifying table row, may have its Merchant extended once by the
// multiline merger, and is immutable after the document finishes.
type Transaction struct {
	ID             string          `json:"id" csv:"id"`
	Date           time.Time       `json:"date" csv:"-"`
	Merchant       string          `json:"merchant" csv:"merchant"`
	Amount         decimal.Decimal `json:"amount" csv:"amount"`
	RawDescription string          `json:"raw_description" csv:"raw_description"`
	Tag            Tag             `json:"tag" csv:"tag"`
}

// NewTransaction builds a transaction with a fresh identifier.
func NewTransaction(date time.Time, merchant string, amount decimal.Decimal, raw string, tag Tag) Transaction {
	return Transaction{
		ID:             uuid.NewString(),
		Date:           date,
		Merchant:       merchant,
		Amount:         amount,
		RawDescription: raw,
		Tag:            tag,
	}
}

// StatementMetadata describes the document the transactions came from.
// Produced once per document and immutable after construction.
type StatementMetadata struct {
	Institution string     `json:"institution"`
	AccountName string     `json:"account_name"`
	AccountType string     `json:"account_type"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}

// RowRejection records why a row was dropped. Rejections are diagnostics,
// not errors: they never abort table or document processing.
type RowRejection struct {
	Table  int    `json:"table"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ExtractionResult is the sole output of the engine: statement metadata
// plus the ordered list of accepted transactions. A result with zero
// transactions is valid; callers decide whether empty means failure.
type ExtractionResult struct {
	Metadata     StatementMetadata `json:"metadata"`
	Transactions []Transaction     `json:"transactions"`
	Rejections   []RowRejection    `json:"rejections,omitempty"`
}
