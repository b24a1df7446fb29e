package analyzer

import (
	"fmt"
	"log"

	"github.com/aqlanhadi/saham/analyzer/common"
)

// Analyze runs the full pipeline over one raw report grid: extract the
// transactions, classify each one, and render the client messages. The
// whole run uses only local state, so concurrent calls are safe.
func Analyze(grid [][]string, source string) (common.Analysis, error) {
	transactions, err := ExtractTransactions(grid)
	if err != nil {
		return common.Analysis{}, fmt.Errorf("extracting transactions from %s: %w", source, err)
	}

	cfg := loadDeadlineConfig()

	analysis := common.Analysis{
		Source:            source,
		TotalTransactions: len(transactions),
	}

	for i := range transactions {
		transaction := &transactions[i]
		transaction.Currency = common.NormalizeCurrency(transaction.SettleCurrency)
		transaction.ActionNeeded = classifyWith(*transaction, cfg)
		transaction.Message = RenderMessage(*transaction, transaction.ActionNeeded)

		switch transaction.ActionNeeded {
		case common.ActionReminder:
			analysis.Reminders++
		case common.ActionForceSelling:
			analysis.ForceSelling++
		}
	}

	analysis.ActionRequired = analysis.Reminders + analysis.ForceSelling
	analysis.Transactions = transactions

	log.Printf("%s: %d transactions, %d need action (%d reminders, %d force selling)",
		source, analysis.TotalTransactions, analysis.ActionRequired, analysis.Reminders, analysis.ForceSelling)

	return analysis, nil
}

// CreateFinalOutput shapes an analysis for API responses. With
// summaryOnly the per-transaction list is dropped and only the counts
// remain.
func CreateFinalOutput(analysis common.Analysis, summaryOnly bool) interface{} {
	if !summaryOnly {
		return analysis
	}

	return map[string]interface{}{
		"source":             analysis.Source,
		"total_transactions": analysis.TotalTransactions,
		"action_required":    analysis.ActionRequired,
		"reminders":          analysis.Reminders,
		"force_selling":      analysis.ForceSelling,
	}
}
