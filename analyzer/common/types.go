package common

import (
	"github.com/shopspring/decimal"
)

// Action is the outcome of classifying a single awaiting transaction.
type Action string

const (
	ActionNone         Action = ""
	ActionReminder     Action = "REMINDER"
	ActionForceSelling Action = "FORCE_SELLING"
)

// Account is the scan-local "current account" built from a header row.
// Its fields are copied onto every transaction emitted under it.
type Account struct {
	AccountNumber   string `json:"account_number"`
	AccountName     string `json:"account_name"`
	AccountTypeCode string `json:"account_type_code"`
	ContraFlag      string `json:"contra_flag"`
}

// Transaction is one settlement-date row of the share awaiting report,
// with the owning account's fields copied in at extraction time.
type Transaction struct {
	AccountNumber   string          `json:"account_number"`
	AccountName     string          `json:"account_name"`
	AccountTypeCode string          `json:"account_type_code"`
	ContraFlag      string          `json:"contra_flag"`
	SecurityName    string          `json:"security_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	SettleCurrency  string          `json:"settle_currency"`
	SettleAmount    decimal.Decimal `json:"settle_amount"`
	Days            string          `json:"days,omitempty"`
	PaymentRef      string          `json:"payment_ref,omitempty"`
	MarginPU        string          `json:"margin_pu,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	ActionNeeded    Action          `json:"action_needed,omitempty"`
	Message         string          `json:"message,omitempty"`
}

// Analysis is the result of a full run over one report.
type Analysis struct {
	Source            string        `json:"source"`
	TotalTransactions int           `json:"total_transactions"`
	ActionRequired    int           `json:"action_required"`
	Reminders         int           `json:"reminders"`
	ForceSelling      int           `json:"force_selling"`
	Transactions      []Transaction `json:"transactions"`
}

// Actionable returns the transactions that were classified as needing
// action, in report order.
func (a Analysis) Actionable() []Transaction {
	actionable := []Transaction{}
	for _, tx := range a.Transactions {
		if tx.ActionNeeded != ActionNone {
			actionable = append(actionable, tx)
		}
	}
	return actionable
}

// ByAction returns the transactions classified with the given action.
func (a Analysis) ByAction(action Action) []Transaction {
	matched := []Transaction{}
	for _, tx := range a.Transactions {
		if tx.ActionNeeded == action {
			matched = append(matched, tx)
		}
	}
	return matched
}
