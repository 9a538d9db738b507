package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"decantly/internal/domain"
	"decantly/internal/repos"
	"decantly/internal/stock"
)

type PerfumeService struct {
	Perfumes *repos.PerfumeRepo
	Orders   *repos.OrderRepo
}

func NewPerfumeService(perfumes *repos.PerfumeRepo, orders *repos.OrderRepo) *PerfumeService {
	return &PerfumeService{Perfumes: perfumes, Orders: orders}
}

// PerfumeInput carries every editable field; Update replaces them all.
type PerfumeInput struct {
	Brand         string  `json:"brand"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	ToDecantML    float64 `json:"to_decant_ml"`
	PricePerML    float64 `json:"price_per_ml"`
	PurchasePrice float64 `json:"purchase_price"`

	IsFeminine  bool `json:"is_feminine"`
	IsMasculine bool `json:"is_masculine"`
	IsUnisex    bool `json:"is_unisex"`

	SeasonSpring bool `json:"season_spring"`
	SeasonSummer bool `json:"season_summer"`
	SeasonAutumn bool `json:"season_autumn"`
	SeasonWinter bool `json:"season_winter"`

	IsSplit bool `json:"is_split"`

	TopNotes   string `json:"top_notes"`
	HeartNotes string `json:"heart_notes"`
	BaseNotes  string `json:"base_notes"`

	CatalogURL string `json:"catalog_url"`
	ImageData  string `json:"image_data"`
}

func (in PerfumeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrPerfumeName
	}
	if in.ToDecantML < 0 || in.PricePerML < 0 || in.PurchasePrice < 0 {
		return ErrNegativeValue
	}
	switch in.Status {
	case "", domain.PerfumeAvailable, domain.PerfumeUnavailable:
		return nil
	default:
		return ErrBadStatus
	}
}

func (in PerfumeInput) apply(p *domain.Perfume) {
	p.Brand = strings.TrimSpace(in.Brand)
	p.Name = strings.TrimSpace(in.Name)
	p.Status = in.Status
	if p.Status == "" {
		p.Status = domain.PerfumeAvailable
	}
	p.ToDecantML = in.ToDecantML
	p.PricePerML = in.PricePerML
	p.PurchasePrice = in.PurchasePrice
	p.IsFeminine = in.IsFeminine
	p.IsMasculine = in.IsMasculine
	p.IsUnisex = in.IsUnisex
	p.SeasonSpring = in.SeasonSpring
	p.SeasonSummer = in.SeasonSummer
	p.SeasonAutumn = in.SeasonAutumn
	p.SeasonWinter = in.SeasonWinter
	p.IsSplit = in.IsSplit
	p.TopNotes = in.TopNotes
	p.HeartNotes = in.HeartNotes
	p.BaseNotes = in.BaseNotes
	p.CatalogURL = strings.TrimSpace(in.CatalogURL)
	p.ImageData = in.ImageData
}

func (s *PerfumeService) Create(in PerfumeInput) (domain.Perfume, error) {
	if err := in.validate(); err != nil {
		return domain.Perfume{}, err
	}
	p := domain.Perfume{ID: uuid.NewString()}
	in.apply(&p)
	if err := s.Perfumes.Create(p); err != nil {
		return domain.Perfume{}, err
	}
	return p, nil
}

func (s *PerfumeService) Update(id string, in PerfumeInput) (domain.Perfume, error) {
	if err := in.validate(); err != nil {
		return domain.Perfume{}, err
	}
	p := domain.Perfume{ID: id}
	in.apply(&p)
	n, err := s.Perfumes.Update(p)
	if err != nil {
		return domain.Perfume{}, err
	}
	if n == 0 {
		return domain.Perfume{}, ErrNotFound
	}
	return s.Perfumes.Get(id)
}

// Delete removes the perfume only; order history referencing it survives
// and still aggregates (as zero-stock, zero-purchase).
func (s *PerfumeService) Delete(id string) error {
	n, err := s.Perfumes.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PerfumeService) List(f repos.PerfumeFilter) ([]domain.Perfume, error) {
	return s.Perfumes.List(f)
}

func (s *PerfumeService) Get(id string) (domain.Perfume, error) {
	p, err := s.Perfumes.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Perfume{}, ErrNotFound
	}
	return p, err
}

// Metrics recomputes the perfume's derived state from its full line-item
// history. Nothing is read from cached columns; there are none.
func (s *PerfumeService) Metrics(id string) (stock.Metrics, error) {
	p, err := s.Get(id)
	if err != nil {
		return stock.Metrics{}, err
	}
	items, err := s.Orders.ItemsByPerfume(id)
	if err != nil {
		return stock.Metrics{}, err
	}
	return stock.Aggregate(p, items), nil
}

// PerfumeOverview is one dashboard row: the perfume plus its live metrics.
type PerfumeOverview struct {
	domain.Perfume
	Metrics stock.Metrics `json:"metrics"`
}

func (s *PerfumeService) Overview(f repos.PerfumeFilter) ([]PerfumeOverview, error) {
	perfumes, err := s.Perfumes.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]PerfumeOverview, 0, len(perfumes))
	for _, p := range perfumes {
		items, err := s.Orders.ItemsByPerfume(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PerfumeOverview{Perfume: p, Metrics: stock.Aggregate(p, items)})
	}
	return out, nil
}
