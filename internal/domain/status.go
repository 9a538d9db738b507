package domain

// Workflow statuses, from most to least complete. Each one names the next
// action the seller has to take.
const (
	StatusComplete            = "COMPLETE"
	StatusNeedsBuyerData      = "NEEDS_BUYER_DATA"
	StatusCollectConfirmation = "COLLECT_CONFIRMATION"
	StatusShipPackage         = "SHIP_PACKAGE"
	StatusGenerateLabel       = "GENERATE_LABEL"
	StatusAwaitingPayment     = "AWAITING_PAYMENT"
	StatusSendMessage         = "SEND_MESSAGE"
)

// WorkflowStatus derives the actionable step from the flag set. Flags are
// checked from most complete to least; the first unmet step wins. A confirmed
// order still reports NEEDS_BUYER_DATA until the buyer record is complete.
func (o Order) WorkflowStatus() string {
	switch {
	case o.ConfirmationObtained:
		if !o.HasFullBuyerData() {
			return StatusNeedsBuyerData
		}
		return StatusComplete
	case o.Sent:
		return StatusCollectConfirmation
	case o.GeneratedLabel:
		return StatusShipPackage
	case o.ReceivedMoney:
		return StatusGenerateLabel
	case o.SentMessage:
		return StatusAwaitingPayment
	default:
		return StatusSendMessage
	}
}

var statusLabels = map[string]string{
	StatusComplete:            "Zakończone",
	StatusNeedsBuyerData:      "Uzupełnij dane kupującego",
	StatusCollectConfirmation: "Pobierz potwierdzenie",
	StatusShipPackage:         "Wyślij paczkę",
	StatusGenerateLabel:       "Wygeneruj etykietę",
	StatusAwaitingPayment:     "Oczekiwanie na zapłatę",
	StatusSendMessage:         "Wyślij wiadomość",
}

// StatusLabel maps a workflow status to the label shown on the order board.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}
