package analyzer

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/aqlanhadi/saham/analyzer/common"
)

// deadlineConfig holds the currency sets that decide which settlement
// deadline applies. Local currencies get one extra grace day.
type deadlineConfig struct {
	Local   map[string]bool
	Foreign map[string]bool
}

var (
	defaultLocalCurrencies   = []string{"SGD", "MYR"}
	defaultForeignCurrencies = []string{"USD", "CAD", "EUR", "GBP", "JPY", "AUD", "HKD", "CNY"}
)

func loadDeadlineConfig() deadlineConfig {
	local := viper.GetStringSlice("currencies.local")
	if len(local) == 0 {
		local = defaultLocalCurrencies
	}
	foreign := viper.GetStringSlice("currencies.foreign")
	if len(foreign) == 0 {
		foreign = defaultForeignCurrencies
	}

	return deadlineConfig{
		Local:   currencySet(local),
		Foreign: currencySet(foreign),
	}
}

func currencySet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[strings.ToUpper(strings.TrimSpace(code))] = true
	}
	return set
}

// Classify decides whether a transaction needs action. The result is a
// pure function of the transaction's fields and the configured currency
// sets.
func Classify(transaction common.Transaction) common.Action {
	return classifyWith(transaction, loadDeadlineConfig())
}

// classifyWith runs the decision cascade. The guards run in a fixed
// order; reordering them changes the outcome for overlapping inputs.
func classifyWith(transaction common.Transaction, cfg deadlineConfig) common.Action {
	// Settled transactions need nothing, whatever the deadlines say.
	if paymentArranged(transaction) {
		return common.ActionNone
	}

	currency := common.NormalizeCurrency(transaction.SettleCurrency)
	days, hasDays := common.ParseDays(transaction.Days)
	isMarginType := transaction.AccountTypeCode == "V" || transaction.AccountTypeCode == "M"

	// Margin accounts flagged "NO" run against tighter deadlines. A miss
	// here falls through to the general rule below.
	if isMarginType && hasDays && strings.EqualFold(strings.TrimSpace(transaction.MarginPU), "NO") {
		if cfg.Local[currency] {
			switch {
			case days >= 2:
				return common.ActionForceSelling
			case days >= 1:
				return common.ActionReminder
			}
		} else {
			switch {
			case days >= 1:
				return common.ActionForceSelling
			case days >= 0:
				return common.ActionReminder
			}
		}
	}

	// Outside the margin set only contra-flagged accounts are chased.
	if !isMarginType && transaction.ContraFlag != "Y" {
		return common.ActionNone
	}

	if !hasDays {
		return common.ActionNone
	}

	switch {
	case cfg.Local[currency]:
		if days >= 2 {
			return common.ActionForceSelling
		}
		if days == 1 {
			return common.ActionReminder
		}
	case cfg.Foreign[currency]:
		if days >= 1 {
			return common.ActionForceSelling
		}
		if days == 0 {
			return common.ActionReminder
		}
	}

	return common.ActionNone
}

// paymentArranged reports whether the transaction is already handled: a
// non-empty payment reference, or a margin account with no margin PU
// value at all.
func paymentArranged(transaction common.Transaction) bool {
	ref := strings.TrimSpace(transaction.PaymentRef)
	if ref != "" && !strings.EqualFold(ref, "nan") {
		return true
	}

	if transaction.AccountTypeCode == "V" || transaction.AccountTypeCode == "M" {
		marginPU := strings.ToUpper(strings.TrimSpace(transaction.MarginPU))
		if marginPU == "" || marginPU == "NAN" {
			return true
		}
	}

	return false
}
