// Package voucher holds the apply / remove workflow for discount codes.
//
// A workflow is unapplied until the user submits a code, checking while the
// remote validation is in flight, and applied once the backend accepted the
// code for a given subtotal. An applied voucher remembers that subtotal so a
// later cart change triggers a fresh remote check instead of silently
// keeping a stale discount.
package voucher

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

type State string

const (
	Unapplied State = "unapplied"
	Checking  State = "checking"
	Applied   State = "applied"
)

const (
	MsgInvalidCode = "Mã giảm giá không hợp lệ."
	MsgEmptyCode   = "Vui lòng nhập mã giảm giá."
	MsgInFlight    = "Đang kiểm tra mã giảm giá, vui lòng đợi."
)

// Application is the last successful remote validation.
type Application struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Result struct {
	Code     string
	Discount decimal.Decimal
}

// Checker validates a code against a subtotal remotely.
type Checker interface {
	Check(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error)
}

type CheckerFunc func(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error)

func (f CheckerFunc) Check(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error) {
	return f(ctx, code, subtotal)
}

type Workflow struct {
	mu      sync.Mutex
	state   State
	applied *Application
}

// Restore rebuilds a workflow from a persisted application (nil = unapplied).
func Restore(a *Application) *Workflow {
	w := &Workflow{state: Unapplied}
	if a != nil && a.Code != "" {
		cp := *a
		w.applied = &cp
		w.state = Applied
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Application returns a copy of the applied voucher, nil when none.
func (w *Workflow) Application() *Application {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.applied == nil {
		return nil
	}
	cp := *w.applied
	return &cp
}

// Discount is the amount fed to the pricing calculator.
func (w *Workflow) Discount() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.applied == nil {
		return decimal.Zero
	}
	return w.applied.Discount
}

// Apply validates code against subtotal. On success the workflow is
// applied; on a rejected code it falls back to unapplied and the returned
// error carries the server's message (or a generic one).
func (w *Workflow) Apply(ctx context.Context, c Checker, code string, subtotal decimal.Decimal) (Application, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Application{}, apperr.InvalidErr(MsgEmptyCode, map[string]string{"code": MsgEmptyCode})
	}

	w.mu.Lock()
	if w.state == Checking {
		w.mu.Unlock()
		return Application{}, apperr.ConflictErr(MsgInFlight)
	}
	w.state = Checking
	w.mu.Unlock()

	res, err := c.Check(ctx, code, subtotal)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = Unapplied
		w.applied = nil
		return Application{}, rejection(err)
	}

	if res.Code == "" {
		res.Code = code
	}
	w.applied = &Application{Code: res.Code, Discount: res.Discount, Subtotal: subtotal}
	w.state = Applied
	return *w.applied, nil
}

// Remove drops the applied voucher.
func (w *Workflow) Remove() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.applied = nil
	w.state = Unapplied
}

type Outcome string

const (
	Unchanged   Outcome = "unchanged"
	Revalidated Outcome = "revalidated"
	Dropped     Outcome = "dropped"
)

// Reconcile re-checks an applied voucher when the subtotal moved away from
// the one it was validated for. A rejected code is dropped; a transport
// failure leaves the workflow untouched and is returned.
func (w *Workflow) Reconcile(ctx context.Context, c Checker, subtotal decimal.Decimal) (Outcome, string, error) {
	w.mu.Lock()
	if w.state != Applied || w.applied == nil || w.applied.Subtotal.Equal(subtotal) {
		w.mu.Unlock()
		return Unchanged, "", nil
	}
	code := w.applied.Code
	w.state = Checking
	w.mu.Unlock()

	res, err := c.Check(ctx, code, subtotal)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		if Transient(err) {
			w.state = Applied
			return Unchanged, "", err
		}
		w.applied = nil
		w.state = Unapplied
		return Dropped, apperr.MessageOr(err, MsgInvalidCode), nil
	}
	w.applied = &Application{Code: code, Discount: res.Discount, Subtotal: subtotal}
	w.state = Applied
	return Revalidated, "", nil
}

// Transient reports whether a check failed for reasons unrelated to the
// code itself. An applied voucher survives such failures.
func Transient(err error) bool {
	return apperr.IsKind(err, apperr.Unavailable) ||
		apperr.IsKind(err, apperr.Unauthorized) ||
		apperr.IsKind(err, apperr.Internal)
}

func rejection(err error) error {
	if Transient(err) {
		return err
	}
	msg := apperr.MessageOr(err, MsgInvalidCode)
	return &apperr.AppError{
		Kind:      apperr.Invalid,
		PublicMsg: msg,
		Fields:    map[string]string{"code": msg},
		Err:       err,
	}
}
