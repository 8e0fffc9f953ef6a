// Package checkout runs the checkout page: price summary, voucher
// application, payment-method gate and order placement.
package checkout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/cart"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/orders"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/payments"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/pricing"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/voucher"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

type api interface {
	GetCart(ctx context.Context, token string) (backend.Cart, error)
	CheckVoucher(ctx context.Context, token, code string, total decimal.Decimal) (backend.VoucherCheck, error)
	GetWallet(ctx context.Context, token string) (backend.Wallet, error)
	CreateOrder(ctx context.Context, token string, in backend.CreateOrderInput) (backend.Order, error)
}

type uiSaver interface {
	SaveUI(ctx context.Context, s *session.Session) error
}

type Service struct {
	api         api
	payments    payments.Provider
	store       uiSaver
	shippingFee decimal.Decimal
	log         *slog.Logger

	// collapses double submits from one session
	inflight singleflight.Group
}

func NewService(a api, p payments.Provider, store uiSaver, shippingFee decimal.Decimal, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{api: a, payments: p, store: store, shippingFee: shippingFee, log: l}
}

// checker adapts the backend voucher endpoint to voucher.Checker.
func (s *Service) checker(token string) voucher.Checker {
	return voucher.CheckerFunc(func(ctx context.Context, code string, subtotal decimal.Decimal) (voucher.Result, error) {
		res, err := s.api.CheckVoucher(ctx, token, code, subtotal)
		if err != nil {
			return voucher.Result{}, err
		}
		return voucher.Result{Code: res.Code, Discount: res.DiscountAmount}, nil
	})
}

type cartState struct {
	cart     backend.Cart
	lines    []pricing.Line
	subtotal decimal.Decimal
}

func (s *Service) loadCart(ctx context.Context, token string) (cartState, error) {
	c, err := s.api.GetCart(ctx, token)
	if err != nil {
		return cartState{}, err
	}
	lines := cart.Lines(c)
	return cartState{cart: c, lines: lines, subtotal: pricing.Subtotal(lines)}, nil
}

// reconcile re-validates a stored voucher whose subtotal no longer matches
// and persists the outcome. The returned notice is empty when nothing
// changed.
func (s *Service) reconcile(ctx context.Context, sess *session.Session, subtotal decimal.Decimal) (*voucher.Workflow, string, error) {
	wf := voucher.Restore(sess.UI.Voucher)
	out, msg, err := wf.Reconcile(ctx, s.checker(sess.Token), subtotal)
	if err != nil {
		return wf, "", err
	}
	var notice string
	switch out {
	case voucher.Unchanged:
		return wf, "", nil
	case voucher.Revalidated:
		notice = MsgVoucherUpdated
	case voucher.Dropped:
		notice = MsgVoucherDropped + msg
	}
	sess.UI.Voucher = wf.Application()
	s.saveUI(ctx, sess)
	return wf, notice, nil
}

func (s *Service) saveUI(ctx context.Context, sess *session.Session) {
	if err := s.store.SaveUI(ctx, sess); err != nil {
		s.log.WarnContext(ctx, "checkout_ui_save_failed", slog.Any("err", err))
	}
}

// Summary is the checkout page model. A voucher that can no longer be
// confirmed because the backend is unreachable stays applied; the backend
// checks it again when the order is created.
func (s *Service) Summary(ctx context.Context, sess *session.Session) (view.CheckoutSummary, error) {
	cs, err := s.loadCart(ctx, sess.Token)
	if err != nil {
		return view.CheckoutSummary{}, err
	}
	wf, notice, err := s.reconcile(ctx, sess, cs.subtotal)
	if err != nil {
		s.log.WarnContext(ctx, "voucher_reconcile_skipped", slog.Any("err", err))
	}
	return s.build(ctx, sess, cs, wf, notice), nil
}

func (s *Service) build(ctx context.Context, sess *session.Session, cs cartState, wf *voucher.Workflow, notice string) view.CheckoutSummary {
	b := pricing.Compute(cs.lines, s.shippingFee, wf.Discount())

	out := view.CheckoutSummary{
		Cart:     cart.BuildPage(cs.cart),
		Subtotal: view.VND(b.Subtotal),
		Shipping: view.VND(b.ShippingFee),
		Discount: view.VND(b.Discount),
		Total:    view.VND(b.Total),
		Notice:   notice,
	}
	if app := wf.Application(); app != nil {
		out.Voucher = &view.AppliedVoucher{Code: app.Code, Discount: view.VND(app.Discount)}
	}

	balance := decimal.Zero
	if w, err := s.api.GetWallet(ctx, sess.Token); err != nil {
		s.log.WarnContext(ctx, "wallet_unavailable", slog.Any("err", err))
	} else {
		balance = w.Balance
		out.WalletAvailable = true
	}
	out.WalletBalance = view.VND(balance)

	for _, o := range payments.Options(balance, b.Total) {
		if o.Method == payments.Wallet && !out.WalletAvailable {
			o.Disabled = true
		}
		out.PaymentOptions = append(out.PaymentOptions, view.PaymentOption{
			Method:            string(o.Method),
			Label:             o.Label,
			Disabled:          o.Disabled,
			InsufficientFunds: o.InsufficientFunds,
			Redirect:          o.Redirect,
		})
	}
	return out
}

// ApplyVoucher checks code against the current subtotal. Identical
// concurrent checks from one session share a single backend call.
func (s *Service) ApplyVoucher(ctx context.Context, sess *session.Session, code string) (view.CheckoutSummary, error) {
	cs, err := s.loadCart(ctx, sess.Token)
	if err != nil {
		return view.CheckoutSummary{}, err
	}
	if len(cs.cart.Items) == 0 {
		return view.CheckoutSummary{}, ErrCartEmpty
	}

	key := fmt.Sprintf("voucher:%s:%s:%s", sess.ID, strings.ToUpper(strings.TrimSpace(code)), cs.subtotal.String())
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return voucher.Restore(nil).Apply(ctx, s.checker(sess.Token), code, cs.subtotal)
	})
	if err != nil {
		if !voucher.Transient(err) {
			sess.UI.Voucher = nil
			s.saveUI(ctx, sess)
		}
		return view.CheckoutSummary{}, err
	}

	app := v.(voucher.Application)
	sess.UI.Voucher = &app
	s.saveUI(ctx, sess)
	return s.build(ctx, sess, cs, voucher.Restore(&app), MsgVoucherApplied), nil
}

func (s *Service) RemoveVoucher(ctx context.Context, sess *session.Session) (view.CheckoutSummary, error) {
	wf := voucher.Restore(sess.UI.Voucher)
	wf.Remove()
	sess.UI.Voucher = nil
	s.saveUI(ctx, sess)

	cs, err := s.loadCart(ctx, sess.Token)
	if err != nil {
		return view.CheckoutSummary{}, err
	}
	return s.build(ctx, sess, cs, wf, MsgVoucherRemoved), nil
}

type PlaceOrderInput struct {
	FullName      string
	Phone         string
	Email         string
	Street        string
	Ward          string
	District      string
	Province      string
	Note          string
	PaymentMethod string
}

// Address joins the parts most-specific first, skipping blanks.
func (in PlaceOrderInput) Address() string {
	var parts []string
	for _, p := range []string{in.Street, in.Ward, in.District, in.Province} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// key identifies one submission: a double click shares the first call,
// a different method or address does not.
func (in PlaceOrderInput) key() string {
	h := sha256.New()
	for _, f := range []string{
		strings.ToUpper(strings.TrimSpace(in.PaymentMethod)),
		strings.TrimSpace(in.FullName),
		strings.TrimSpace(in.Phone),
		strings.TrimSpace(in.Email),
		in.Address(),
		strings.TrimSpace(in.Note),
	} {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PlaceOrder re-reads the cart, re-validates the voucher and, for wallet
// payments, re-reads the balance before creating the order. A wallet
// shortfall never reaches the order endpoint.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, in PlaceOrderInput) (view.PlaceOrderResult, error) {
	v, err, _ := s.inflight.Do("order:"+sess.ID+":"+in.key(), func() (any, error) {
		return s.placeOrder(ctx, sess, in)
	})
	if err != nil {
		return view.PlaceOrderResult{}, err
	}
	return v.(view.PlaceOrderResult), nil
}

func (s *Service) placeOrder(ctx context.Context, sess *session.Session, in PlaceOrderInput) (view.PlaceOrderResult, error) {
	method, ok := payments.ParseMethod(in.PaymentMethod)
	if !ok {
		return view.PlaceOrderResult{}, payments.ErrUnknownMethod
	}

	cs, err := s.loadCart(ctx, sess.Token)
	if err != nil {
		return view.PlaceOrderResult{}, err
	}
	if len(cs.cart.Items) == 0 {
		return view.PlaceOrderResult{}, ErrCartEmpty
	}
	if oos := stockShortfall(cs.cart); oos != nil {
		return view.PlaceOrderResult{}, oos.AppError()
	}

	shown := voucher.Restore(sess.UI.Voucher).Discount()
	wf, notice, err := s.reconcile(ctx, sess, cs.subtotal)
	if err != nil {
		return view.PlaceOrderResult{}, err
	}
	if notice != "" && !wf.Discount().Equal(shown) {
		// the total the customer saw is gone; make them look again
		return view.PlaceOrderResult{}, apperr.ConflictErr(notice)
	}

	b := pricing.Compute(cs.lines, s.shippingFee, wf.Discount())

	if method == payments.Wallet {
		w, err := s.api.GetWallet(ctx, sess.Token)
		if err != nil {
			return view.PlaceOrderResult{}, err
		}
		if err := payments.CheckSubmission(method, w.Balance, b.Total); err != nil {
			return view.PlaceOrderResult{}, err
		}
	}

	req := backend.CreateOrderInput{
		FullName:      strings.TrimSpace(in.FullName),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       in.Address(),
		Note:          strings.TrimSpace(in.Note),
		PaymentMethod: string(method),
	}
	if app := wf.Application(); app != nil {
		req.VoucherCode = app.Code
	}

	o, err := s.api.CreateOrder(ctx, sess.Token, req)
	if err != nil {
		return view.PlaceOrderResult{}, err
	}
	s.log.InfoContext(ctx, "order_placed",
		slog.Int64("order_id", o.ID),
		slog.String("order_code", o.OrderCode),
		slog.String("method", string(method)),
		slog.String("total", b.Total.String()),
	)

	sess.UI.Voucher = nil
	s.saveUI(ctx, sess)

	res := view.PlaceOrderResult{Order: orders.CustomerDetail(o)}
	if method == payments.MoMo {
		u, err := s.payments.OrderPayURL(ctx, sess.Token, o.ID)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "momo_url_failed", slog.Int64("order_id", o.ID), slog.Any("err", err))
			res.PaymentError = MsgMomoUnavailable
		case u == "":
			res.PaymentError = MsgMomoUnavailable
		default:
			res.RedirectURL = u
		}
	}
	return res, nil
}

// stockShortfall flags lines above the reported stock. Zero stock is
// treated as unreported; the backend has the final word either way.
func stockShortfall(c backend.Cart) *OutOfStockError {
	var e OutOfStockError
	for _, it := range c.Items {
		if it.Product.Stock > 0 && it.Quantity > it.Product.Stock {
			e.Items = append(e.Items, OutOfStockItem{
				ProductID: it.Product.ID,
				Name:      it.Product.Name,
				Requested: it.Quantity,
				Available: it.Product.Stock,
			})
		}
	}
	if len(e.Items) == 0 {
		return nil
	}
	return &e
}
