package services

import (
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/repos"
)

type CatalogService struct {
	Catalog *repos.CatalogRepo
	Shops   *repos.ShopRepo
}

func NewCatalogService(catalog *repos.CatalogRepo, shops *repos.ShopRepo) *CatalogService {
	return &CatalogService{Catalog: catalog, Shops: shops}
}

func (s *CatalogService) Categories() ([]domain.Category, error) {
	return s.Catalog.ListCategories()
}

func (s *CatalogService) CreateCategory(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	return s.Catalog.CreateCategory(name)
}

func (s *CatalogService) DeleteCategory(id int64) error {
	n, err := s.Catalog.DeleteCategory(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActiveShops lists shops open for orders.
func (s *CatalogService) ActiveShops() ([]domain.Shop, error) {
	return s.Shops.ListActive()
}

func (s *CatalogService) DeleteShop(id int64) error {
	n, err := s.Shops.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Listings searches the public catalog; only active shops show up.
func (s *CatalogService) Listings(shopID, categoryID int64) ([]repos.Listing, error) {
	return s.Catalog.SearchListings(shopID, categoryID)
}
