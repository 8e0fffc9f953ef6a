package orders

import (
	"context"
	"log/slog"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

type adminAPI interface {
	AdminListOrders(ctx context.Context, token, status string, page, size int) (backend.Page[backend.Order], error)
	AdminGetOrder(ctx context.Context, token string, id int64) (backend.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, token string, id int64, status string) (backend.Order, error)
}

type AdminService struct {
	api adminAPI
	log *slog.Logger
}

func NewAdminService(api adminAPI, l *slog.Logger) *AdminService {
	if l == nil {
		l = slog.Default()
	}
	return &AdminService{api: api, log: l}
}

type TransitionInput struct {
	OrderID int64
	Token   string
	Actor   string // staff username, for the log line
	Action  string // confirm|pack|ship|deliver|cancel|approve_cancel
}

func (s *AdminService) List(ctx context.Context, token, status string, pageNo, size int) (view.OrdersPage, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	p, err := s.api.AdminListOrders(ctx, token, status, pageNo, size)
	if err != nil {
		return view.OrdersPage{}, err
	}
	out := page(p, ActorAdmin)
	out.FilterStatus = status
	for _, st := range Statuses {
		out.Statuses = append(out.Statuses, statusBadge(string(st)))
	}
	return out, nil
}

func (s *AdminService) Get(ctx context.Context, token string, id int64) (view.OrderDetail, error) {
	o, err := s.api.AdminGetOrder(ctx, token, id)
	if err != nil {
		return view.OrderDetail{}, err
	}
	return detail(o, ActorAdmin), nil
}

// Transition re-reads the order, validates the action against the admin
// table and only then sends the new status to the backend.
func (s *AdminService) Transition(ctx context.Context, in TransitionInput) (view.OrderDetail, error) {
	action, err := ParseAction(in.Action)
	if err != nil {
		return view.OrderDetail{}, err
	}

	o, err := s.api.AdminGetOrder(ctx, in.Token, in.OrderID)
	if err != nil {
		return view.OrderDetail{}, err
	}

	from := Status(o.OrderStatus)
	to, err := NextStatus(from, action, ActorAdmin)
	if err != nil {
		return view.OrderDetail{}, err
	}

	updated, err := s.api.AdminUpdateOrderStatus(ctx, in.Token, o.ID, string(to))
	if err != nil {
		return view.OrderDetail{}, err
	}
	if updated.ID == 0 {
		updated = o
		updated.OrderStatus = string(to)
	}

	s.log.InfoContext(ctx, "order_transition",
		slog.Int64("order_id", o.ID),
		slog.String("actor", in.Actor),
		slog.String("action", string(action)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	return detail(updated, ActorAdmin), nil
}
