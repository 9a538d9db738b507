package domain

// Perfume availability statuses.
const (
	PerfumeAvailable   = "AVAILABLE"
	PerfumeUnavailable = "UNAVAILABLE"
)

// Perfume is one bottle (or batch) earmarked for decanting.
type Perfume struct {
	ID            string  `db:"id" json:"id"`
	Brand         string  `db:"brand" json:"brand"`
	Name          string  `db:"name" json:"name"`
	Status        string  `db:"status" json:"status"` // AVAILABLE | UNAVAILABLE
	ToDecantML    float64 `db:"to_decant_ml" json:"to_decant_ml"`
	PricePerML    float64 `db:"price_per_ml" json:"price_per_ml"`
	PurchasePrice float64 `db:"purchase_price" json:"purchase_price"`

	IsFeminine  bool `db:"is_feminine" json:"is_feminine"`
	IsMasculine bool `db:"is_masculine" json:"is_masculine"`
	IsUnisex    bool `db:"is_unisex" json:"is_unisex"`

	SeasonSpring bool `db:"season_spring" json:"season_spring"`
	SeasonSummer bool `db:"season_summer" json:"season_summer"`
	SeasonAutumn bool `db:"season_autumn" json:"season_autumn"`
	SeasonWinter bool `db:"season_winter" json:"season_winter"`

	// IsSplit marks a bottle bought to be broken down among buyers.
	IsSplit bool `db:"is_split" json:"is_split"`

	// Scent notes are stored as comma-separated lists, same as the data
	// the tool has always held.
	TopNotes   string `db:"top_notes" json:"top_notes"`
	HeartNotes string `db:"heart_notes" json:"heart_notes"`
	BaseNotes  string `db:"base_notes" json:"base_notes"`

	CatalogURL string `db:"catalog_url" json:"catalog_url"`
	ImageData  string `db:"image_data" json:"image_data,omitempty"` // base64

	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

// DisplayName is how a perfume shows up in order summaries and messages.
func (p Perfume) DisplayName() string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}
