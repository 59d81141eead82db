package services

import (
	"context"
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/feed"
	"orderdesk/internal/repos"
	"orderdesk/internal/validate"
)

type PartnerService struct {
	Catalog *repos.CatalogRepo
	Shops   *repos.ShopRepo
	Orders  *repos.OrderRepo
	Fetcher *feed.Fetcher
}

func NewPartnerService(catalog *repos.CatalogRepo, shops *repos.ShopRepo, orders *repos.OrderRepo, fetcher *feed.Fetcher) *PartnerService {
	return &PartnerService{Catalog: catalog, Shops: shops, Orders: orders, Fetcher: fetcher}
}

// Ingest downloads a price-list feed and reconciles the owner's catalog
// against it. Fetch and parse failures happen before any mutation; the
// reconcile itself is a single transaction.
func (s *PartnerService) Ingest(ctx context.Context, ownerID int64, url string) (repos.IngestResult, error) {
	if url == "" {
		return repos.IngestResult{}, fmt.Errorf("%w: url required", domain.ErrValidation)
	}
	body, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return repos.IngestResult{}, err
	}
	parsed, err := feed.Parse(body)
	if err != nil {
		return repos.IngestResult{}, err
	}
	return s.Catalog.Reconcile(ownerID, parsed)
}

func (s *PartnerService) State(ownerID int64) (*domain.Shop, error) {
	return s.Shops.ByUser(ownerID)
}

func (s *PartnerService) SetState(ownerID int64, raw string) error {
	state, ok := validate.Bool(raw)
	if !ok {
		return fmt.Errorf("%w: state must be a boolean", domain.ErrValidation)
	}
	n, err := s.Shops.SetState(ownerID, state)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: no shop for this account", domain.ErrNotFound)
	}
	return nil
}

// PlacedOrders lists placed orders containing the partner's listings.
func (s *PartnerService) PlacedOrders(ownerID int64) ([]repos.OrderView, error) {
	return s.Orders.ListByPartner(ownerID)
}
