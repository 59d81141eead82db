package handlers

import (
	"github.com/jmoiron/sqlx"

	"orderdesk/internal/config"
	"orderdesk/internal/feed"
	"orderdesk/internal/notify"
	"orderdesk/internal/repos"
	"orderdesk/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	UserHandler    *UserHandler
	ContactHandler *ContactHandler
	CatalogHandler *CatalogHandler
	PartnerHandler *PartnerHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, mail notify.Notifier) *Deps {
	userRepo := repos.NewUserRepo(db)
	contactRepo := repos.NewContactRepo(db)
	shopRepo := repos.NewShopRepo(db)
	catalogRepo := repos.NewCatalogRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(userRepo, mail)
	catalogSvc := services.NewCatalogService(catalogRepo, shopRepo)
	partnerSvc := services.NewPartnerService(catalogRepo, shopRepo, orderRepo, feed.NewFetcher(cfg.FeedTimeout))
	cartSvc := services.NewCartService(orderRepo)
	orderSvc := services.NewOrderService(orderRepo, userRepo, mail)

	return &Deps{
		Auth:           authSvc,
		UserHandler:    &UserHandler{Auth: authSvc},
		ContactHandler: &ContactHandler{Contacts: contactRepo},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		PartnerHandler: &PartnerHandler{Partner: partnerSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
	}
}
