package services

import (
	"fmt"
	"strconv"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/notify"
	"orderdesk/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Mail   notify.Notifier
}

func NewOrderService(orders *repos.OrderRepo, users *repos.UserRepo, mail notify.Notifier) *OrderService {
	return &OrderService{Orders: orders, Users: users, Mail: mail}
}

// Place moves the caller's cart with the given id to status 'new' and
// pins the delivery contact. The state transition is one-way; the
// confirmation mail is best-effort and never rolls it back.
func (s *OrderService) Place(userID int64, rawOrderID, rawContactID string) error {
	orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: order id must be numeric", domain.ErrValidation)
	}
	contactID, err := strconv.ParseInt(rawContactID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: contact id must be numeric", domain.ErrValidation)
	}
	ok, err := s.Orders.Place(userID, orderID, contactID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no matching cart order", domain.ErrNotFound)
	}
	if u, uerr := s.Users.ByID(userID); uerr == nil {
		if merr := s.Mail.Send(u.Email, "Order status update", "Your order has been placed"); merr != nil {
			applog.Error(nil, "notify.order_placed", merr, map[string]any{"order_id": orderID})
		}
	}
	return nil
}

func (s *OrderService) List(userID int64) ([]repos.OrderView, error) {
	return s.Orders.ListByUser(userID)
}
