package analyzer

import (
	"fmt"

	"github.com/aqlanhadi/saham/analyzer/common"
)

// The message templates are sent to clients verbatim. Do not reword them
// without clearing the change with the dealing desk.

const reminderTemplate = `Good morning Mr/Ms %s, please note that your purchase for %s shares of %s is due for contra/settlement today.

Thank you`

const forceSellingTemplate = `Good morning Mr/Ms %s, please be informed that today is forceselling day for your purchase for %s shares of %s.

Kindly inform us if you are keen to pick up the purchase. If so, please make payment via Paynow or FAST transfer and send us proof of payment before 2pm today.

If opting to force sell instead, please inform us and do not sell the shares yourself. Please note that forceselling will result in a buy suspension for 7 days.

Thank you`

// RenderMessage produces the client-facing text for a classified
// transaction. Transactions needing no action render to an empty string.
func RenderMessage(transaction common.Transaction, action common.Action) string {
	switch action {
	case common.ActionReminder:
		return fmt.Sprintf(reminderTemplate, transaction.AccountName, transaction.Quantity, transaction.SecurityName)
	case common.ActionForceSelling:
		return fmt.Sprintf(forceSellingTemplate, transaction.AccountName, transaction.Quantity, transaction.SecurityName)
	}
	return ""
}
