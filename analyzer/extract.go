package analyzer

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/aqlanhadi/saham/analyzer/common"
)

// headerMarker is the literal that identifies the column header row of a
// share awaiting report. Everything above it is title banner.
const headerMarker = "Contract Date"

// Column offsets of a settlement-date row, counted from the first cell.
const (
	colSecurityName   = 2
	colQuantity       = 6
	colSettleCurrency = 7
	colSettleAmount   = 8
	colDays           = 9
	colPaymentRef     = 11
	colMarginPU       = 12
)

// ErrNoHeaderRow is returned when the report carries no "Contract Date"
// header row. Nothing can be extracted from such a file.
var ErrNoHeaderRow = errors.New("no header row containing \"Contract Date\" found")

var (
	accountHeaderRegex = regexp.MustCompile(`^\d{7}`)
	settlementRowRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	accountNameRegex   = regexp.MustCompile(`^[^@*]+`)
)

// ExtractTransactions walks the raw grid top to bottom. Rows starting
// with a 7-digit account number replace the current account; rows whose
// first cell is a DD/DD/DD settlement date become transactions under it.
// A settlement row with no preceding account header is skipped, as is
// any row whose cells cannot be read.
func ExtractTransactions(grid [][]string) ([]common.Transaction, error) {
	headerIdx := -1
	for idx, row := range grid {
		if strings.Contains(strings.Join(row, " "), headerMarker) {
			headerIdx = idx
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeaderRow
	}

	transactions := []common.Transaction{}
	var currentAccount *common.Account

	for idx := headerIdx + 1; idx < len(grid); idx++ {
		row := grid[idx]
		firstCol := strings.TrimSpace(cell(row, 0))
		if firstCol == "" || firstCol == "nan" {
			continue
		}

		if accountHeaderRegex.MatchString(firstCol) {
			currentAccount = parseAccountHeader(firstCol)
			continue
		}

		if currentAccount != nil && settlementRowRegex.MatchString(firstCol) {
			transaction, err := buildTransaction(row, *currentAccount)
			if err != nil {
				log.Printf("Warning: skipping row %d: %v", idx+1, err)
				continue
			}
			transactions = append(transactions, transaction)
		}
	}

	return transactions, nil
}

// parseAccountHeader splits "9101112/CLIENT NAME*V" into its account
// fields. The name is the run of text before the first @ or * marker.
func parseAccountHeader(firstCol string) *common.Account {
	parts := strings.Split(firstCol, "/")
	number := strings.TrimSpace(parts[0])

	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(strings.Join(parts[1:], "/"))
	}

	name := "Unknown"
	if match := strings.TrimSpace(accountNameRegex.FindString(rest)); match != "" {
		name = match
	}

	typeCode := ClassifyAccountType(firstCol)

	return &common.Account{
		AccountNumber:   number,
		AccountName:     name,
		AccountTypeCode: typeCode,
		ContraFlag:      ContraFlagFor(typeCode),
	}
}

func buildTransaction(row []string, account common.Account) (common.Transaction, error) {
	quantity, err := common.CleanDecimal(cell(row, colQuantity))
	if err != nil {
		return common.Transaction{}, fmt.Errorf("unreadable quantity %q: %w", cell(row, colQuantity), err)
	}

	amount, err := common.CleanDecimal(cell(row, colSettleAmount))
	if err != nil {
		return common.Transaction{}, fmt.Errorf("unreadable settlement amount %q: %w", cell(row, colSettleAmount), err)
	}

	return common.Transaction{
		AccountNumber:   account.AccountNumber,
		AccountName:     account.AccountName,
		AccountTypeCode: account.AccountTypeCode,
		ContraFlag:      account.ContraFlag,
		SecurityName:    strings.TrimSpace(cell(row, colSecurityName)),
		Quantity:        quantity,
		SettleCurrency:  strings.TrimSpace(cell(row, colSettleCurrency)),
		SettleAmount:    amount,
		Days:            strings.TrimSpace(cell(row, colDays)),
		PaymentRef:      strings.TrimSpace(cell(row, colPaymentRef)),
		MarginPU:        strings.TrimSpace(cell(row, colMarginPU)),
	}, nil
}

// cell reads a column that may be missing on short rows. GetRows trims
// trailing empty cells, so an absent trailing column reads as "".
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
