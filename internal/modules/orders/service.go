package orders

import (
	"context"
	"log/slog"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const MsgOrderNotFound = "Không tìm thấy đơn hàng."

type customerAPI interface {
	ListOrders(ctx context.Context, token string, page, size int) (backend.Page[backend.Order], error)
	GetOrderByCode(ctx context.Context, token, code string) (backend.Order, error)
	RequestCancel(ctx context.Context, token string, orderID int64) (backend.Order, error)
}

// Notifier is told about customer actions the back-office has to handle.
type Notifier interface {
	CancelRequested(ctx context.Context, o backend.Order, requestedBy string) error
}

// Service serves the customer's "my orders" pages.
type Service struct {
	api      customerAPI
	notifier Notifier
	log      *slog.Logger
}

func NewService(api customerAPI, n Notifier, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{api: api, notifier: n, log: l}
}

func (s *Service) List(ctx context.Context, token string, pageNo, size int) (view.OrdersPage, error) {
	p, err := s.api.ListOrders(ctx, token, pageNo, size)
	if err != nil {
		return view.OrdersPage{}, err
	}
	return page(p, ActorCustomer), nil
}

func (s *Service) Get(ctx context.Context, token, code string) (view.OrderDetail, error) {
	o, err := s.byCode(ctx, token, code)
	if err != nil {
		return view.OrderDetail{}, err
	}
	return detail(o, ActorCustomer), nil
}

// RequestCancel checks the order is still cancellable by its owner before
// asking the backend to move it to CANCEL_REQUESTED.
func (s *Service) RequestCancel(ctx context.Context, token, code, username string) (view.OrderDetail, error) {
	o, err := s.byCode(ctx, token, code)
	if err != nil {
		return view.OrderDetail{}, err
	}
	if _, err := NextStatus(Status(o.OrderStatus), ActionRequestCancel, ActorCustomer); err != nil {
		return view.OrderDetail{}, err
	}

	updated, err := s.api.RequestCancel(ctx, token, o.ID)
	if err != nil {
		return view.OrderDetail{}, err
	}
	if updated.ID == 0 {
		updated = o
		updated.OrderStatus = string(CancelRequested)
	}

	s.log.InfoContext(ctx, "order_cancel_requested",
		slog.String("order_code", o.OrderCode),
		slog.String("by", username),
	)
	if s.notifier != nil {
		if err := s.notifier.CancelRequested(ctx, updated, username); err != nil {
			s.log.WarnContext(ctx, "cancel_notify_failed", slog.String("order_code", o.OrderCode), slog.Any("err", err))
		}
	}
	return detail(updated, ActorCustomer), nil
}

func (s *Service) byCode(ctx context.Context, token, code string) (backend.Order, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return backend.Order{}, apperr.NotFoundErr(MsgOrderNotFound)
	}
	o, err := s.api.GetOrderByCode(ctx, token, code)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return backend.Order{}, apperr.NotFoundErr(apperr.MessageOr(err, MsgOrderNotFound))
		}
		return backend.Order{}, err
	}
	return o, nil
}
