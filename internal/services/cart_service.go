package services

import (
	"encoding/json"
	"fmt"
	"math"

	"orderdesk/internal/domain"
	"orderdesk/internal/repos"
	"orderdesk/internal/validate"
)

// CartService works on the caller's cart: the single order with status
// 'cart', created lazily on first add. The items payloads arrive as
// JSON-encoded strings inside the request body, which is why the
// methods take raw strings and own the decoding.
type CartService struct {
	Orders *repos.OrderRepo
}

func NewCartService(orders *repos.OrderRepo) *CartService {
	return &CartService{Orders: orders}
}

func (s *CartService) List(userID int64) ([]repos.OrderView, error) {
	return s.Orders.ListCart(userID)
}

// AddItems decodes `[{"product_info": N, "quantity": N}, ...]` and adds
// every line or none: an unknown listing or a duplicate line aborts the
// whole call.
func (s *CartService) AddItems(userID int64, rawItems string) (int, error) {
	if rawItems == "" {
		return 0, fmt.Errorf("%w: items required", domain.ErrValidation)
	}
	var items []repos.ItemSpec
	if err := json.Unmarshal([]byte(rawItems), &items); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: items required", domain.ErrValidation)
	}
	return s.Orders.AddItems(userID, items)
}

// RemoveItems deletes cart lines named by a comma-separated id string.
// Non-numeric entries are dropped; an input with no numeric id at all
// is a validation error rather than a silent no-op.
func (s *CartService) RemoveItems(userID int64, rawIDs string) (int64, error) {
	ids := validate.IDList(rawIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: items required", domain.ErrValidation)
	}
	return s.Orders.DeleteItems(userID, ids)
}

// UpdateQuantities applies `[{"id": N, "quantity": N}, ...]` to the
// caller's cart. Entries where either field is not an integer are
// skipped, not errored.
func (s *CartService) UpdateQuantities(userID int64, rawItems string) (int64, error) {
	if rawItems == "" {
		return 0, fmt.Errorf("%w: items required", domain.ErrValidation)
	}
	var entries []map[string]any
	if err := json.Unmarshal([]byte(rawItems), &entries); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	var updated int64
	for _, e := range entries {
		id, okID := intField(e, "id")
		qty, okQty := intField(e, "quantity")
		if !okID || !okQty || qty < 1 {
			continue
		}
		n, err := s.Orders.UpdateQuantity(userID, id, int(qty))
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

// JSON numbers decode as float64; only integral values count.
func intField(m map[string]any, key string) (int64, bool) {
	f, ok := m[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
