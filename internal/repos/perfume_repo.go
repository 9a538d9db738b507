package repos

import (
	"github.com/jmoiron/sqlx"

	"decantly/internal/domain"
)

type PerfumeRepo struct{ db *sqlx.DB }

func NewPerfumeRepo(db *sqlx.DB) *PerfumeRepo { return &PerfumeRepo{db: db} }

// PerfumeFilter narrows List. Zero value lists everything.
type PerfumeFilter struct {
	Status    string // AVAILABLE | UNAVAILABLE | ""
	Query     string // substring over brand, name and scent notes
	SplitOnly bool
}

const perfumeCols = `
  id, brand, name, status, to_decant_ml, price_per_ml, purchase_price,
  is_feminine, is_masculine, is_unisex,
  season_spring, season_summer, season_autumn, season_winter,
  is_split, top_notes, heart_notes, base_notes, catalog_url, image_data,
  created_at, updated_at`

func (r *PerfumeRepo) List(f PerfumeFilter) ([]domain.Perfume, error) {
	where := `1=1`
	args := []any{}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Query != "" {
		where += ` AND (LOWER(brand) LIKE ? OR LOWER(name) LIKE ?
		  OR LOWER(top_notes) LIKE ? OR LOWER(heart_notes) LIKE ? OR LOWER(base_notes) LIKE ?)`
		q := "%" + f.Query + "%"
		args = append(args, q, q, q, q, q)
	}
	if f.SplitOnly {
		where += ` AND is_split = 1`
	}

	var out []domain.Perfume
	err := r.db.Select(&out, `
	  SELECT `+perfumeCols+`
	  FROM perfumes
	  WHERE `+where+`
	  ORDER BY LOWER(brand), LOWER(name)`, args...)
	return out, err
}

func (r *PerfumeRepo) Get(id string) (domain.Perfume, error) {
	var p domain.Perfume
	err := r.db.Get(&p, `SELECT `+perfumeCols+` FROM perfumes WHERE id = ?`, id)
	return p, err
}

func (r *PerfumeRepo) Create(p domain.Perfume) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO perfumes(
	    id, brand, name, status, to_decant_ml, price_per_ml, purchase_price,
	    is_feminine, is_masculine, is_unisex,
	    season_spring, season_summer, season_autumn, season_winter,
	    is_split, top_notes, heart_notes, base_notes, catalog_url, image_data,
	    created_at, updated_at
	  ) VALUES (
	    :id, :brand, :name, :status, :to_decant_ml, :price_per_ml, :purchase_price,
	    :is_feminine, :is_masculine, :is_unisex,
	    :season_spring, :season_summer, :season_autumn, :season_winter,
	    :is_split, :top_notes, :heart_notes, :base_notes, :catalog_url, :image_data,
	    CURRENT_TIMESTAMP, ''
	  )`, p)
	return err
}

// Update replaces every editable field, matching the edit dialog's
// full-replacement semantics.
func (r *PerfumeRepo) Update(p domain.Perfume) (int64, error) {
	res, err := r.db.NamedExec(`
	  UPDATE perfumes SET
	    brand = :brand, name = :name, status = :status,
	    to_decant_ml = :to_decant_ml, price_per_ml = :price_per_ml,
	    purchase_price = :purchase_price,
	    is_feminine = :is_feminine, is_masculine = :is_masculine, is_unisex = :is_unisex,
	    season_spring = :season_spring, season_summer = :season_summer,
	    season_autumn = :season_autumn, season_winter = :season_winter,
	    is_split = :is_split,
	    top_notes = :top_notes, heart_notes = :heart_notes, base_notes = :base_notes,
	    catalog_url = :catalog_url, image_data = :image_data,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = :id`, p)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the perfume row only. Line items referencing it stay put.
func (r *PerfumeRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM perfumes WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
