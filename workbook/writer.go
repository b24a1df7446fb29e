package workbook

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aqlanhadi/saham/analyzer/common"
)

const (
	sheetSummary      = "Action Summary"
	sheetReminders    = "Reminder Messages"
	sheetForceSelling = "Force Selling Messages"

	defaultOutputPrefix = "Share_Awaiting_Messages"
)

var (
	summaryHeader = []interface{}{"Name", "Account", "Action Needed"}
	messageHeader = []interface{}{"Client Name", "Account Number", "Security", "Quantity", "Currency", "Amount", "Message"}
)

// actionDisplayText is how the summary sheet renders each action.
var actionDisplayText = map[common.Action]string{
	common.ActionReminder:     "Yes, last day for contra/settlement.",
	common.ActionForceSelling: "Yes, forcesell day",
}

// BuildReport assembles the three-sheet output workbook: the action
// summary plus one message sheet per action kind. Views with nothing to
// show still get their header row.
func BuildReport(analysis common.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRow(f, sheetSummary, 1, summaryHeader); err != nil {
		return nil, err
	}
	for i, tx := range analysis.Actionable() {
		row := []interface{}{tx.AccountName, tx.AccountNumber, actionDisplayText[tx.ActionNeeded]}
		if err := writeRow(f, sheetSummary, i+2, row); err != nil {
			return nil, err
		}
	}

	views := []struct {
		sheet  string
		action common.Action
	}{
		{sheetReminders, common.ActionReminder},
		{sheetForceSelling, common.ActionForceSelling},
	}

	for _, view := range views {
		if _, err := f.NewSheet(view.sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", view.sheet, err)
		}
		if err := writeRow(f, view.sheet, 1, messageHeader); err != nil {
			return nil, err
		}
		for i, tx := range analysis.ByAction(view.action) {
			row := []interface{}{
				tx.AccountName,
				tx.AccountNumber,
				tx.SecurityName,
				tx.Quantity.InexactFloat64(),
				tx.Currency,
				tx.SettleAmount.InexactFloat64(),
				tx.Message,
			}
			if err := writeRow(f, view.sheet, i+2, row); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowIdx, sheet, err)
	}
	return nil
}

// ReportFileName returns the timestamped name of the output workbook.
func ReportFileName(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = defaultOutputPrefix
	}
	return fmt.Sprintf("%s_%s.xlsx", prefix, at.Format("20060102_150405"))
}
