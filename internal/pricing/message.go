package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageLine is a priced line plus the perfume's display name, enough to
// render the buyer-facing summary.
type MessageLine struct {
	Line
	Perfume string
}

// BuyerMessage renders the summary sent to the buyer. The printed total is
// taken from Compute over the same inputs, so the message can never disagree
// with the stored order total. Gratis lines are left out on purpose; they
// are a surprise, not a charge. An optional payment note (account number,
// BLIK, ...) is appended verbatim.
func BuyerMessage(lines []MessageLine, shipping string, paymentNote string) string {
	plain := make([]Line, len(lines))
	for i, l := range lines {
		plain[i] = l.Line
	}
	q := Compute(plain, shipping)

	var b strings.Builder
	b.WriteString("Podsumowanie:")
	for _, l := range lines {
		if l.Gratis {
			continue
		}
		fmt.Fprintf(&b, "\n%s -> %s x %s = %szł",
			l.Perfume, amount(l.QuantityML), amount(l.PricePerML), amount(l.Subtotal()))
	}
	if q.PaidCount > 0 {
		noun := "Dekanty"
		if q.PaidCount == 1 {
			noun = "Dekant"
		}
		fmt.Fprintf(&b, "\n%s -> %d x %.0f zł = %szł", noun, q.PaidCount, VialCost, amount(q.VialTotal))
	}
	if q.ShippingCost > 0 {
		fmt.Fprintf(&b, "\nZa dostawę %s doliczamy %szł", shipping, amount(q.ShippingCost))
	}
	fmt.Fprintf(&b, "\nRazem: %szł", amount(q.Total))
	if paymentNote != "" {
		b.WriteString("\n\n")
		b.WriteString(paymentNote)
	}
	return b.String()
}

// amount prints whole amounts bare and everything else with two decimals and
// a comma, the way the messages have always read.
func amount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}
