package domain

// Shipping method keys. OwnLabel means the buyer supplied their own label,
// so nothing is charged.
const (
	ShipInPost   = "InPost"
	ShipDPD      = "DPD"
	ShipOwnLabel = "OwnLabel"
)

var shippingCosts = map[string]float64{
	ShipInPost:   12.00,
	ShipDPD:      10.00,
	ShipOwnLabel: 0.00,
}

// ShippingCost returns the flat cost for a method key. An empty key means no
// shipping was chosen and costs nothing. Unknown keys also cost nothing;
// ok=false lets callers tell the two cases apart.
func ShippingCost(method string) (cost float64, ok bool) {
	if method == "" {
		return 0, true
	}
	cost, ok = shippingCosts[method]
	return cost, ok
}

// ShippingMethods lists the selectable methods in menu order.
func ShippingMethods() []string {
	return []string{ShipInPost, ShipDPD, ShipOwnLabel}
}

// StandardVolumes is the fixed decant size menu in milliliters. Free-form
// volumes are allowed only for whole-bottle sales.
var StandardVolumes = []float64{3, 5, 10, 15, 20, 30}

// IsStandardVolume reports whether ml is on the decant size menu.
func IsStandardVolume(ml float64) bool {
	for _, v := range StandardVolumes {
		if v == ml {
			return true
		}
	}
	return false
}
