package orders

import (
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

type Action string

const (
	ActionConfirm       Action = "confirm"
	ActionPack          Action = "pack"
	ActionShip          Action = "ship"
	ActionDeliver       Action = "deliver"
	ActionCancel        Action = "cancel"
	ActionApproveCancel Action = "approve_cancel"
	ActionRequestCancel Action = "request_cancel"
)

type Actor string

const (
	ActorAdmin    Actor = "admin"
	ActorCustomer Actor = "customer"
)

const (
	MsgInvalidTransition = "Không thể thực hiện thao tác này với trạng thái hiện tại của đơn hàng."
	MsgUnknownAction     = "Thao tác không hợp lệ."
)

var (
	ErrInvalidTransition = apperr.ConflictErr(MsgInvalidTransition)
	ErrUnknownAction     = apperr.InvalidErr(MsgUnknownAction, nil)
)

// Kind separates the single forward step from the cancel-style actions.
type Kind string

const (
	KindForward Kind = "forward"
	KindCancel  Kind = "cancel"
)

type transition struct {
	action Action
	to     Status
	kind   Kind
}

// Each row lists at most one forward step plus any cancel action.
var adminTable = map[Status][]transition{
	Pending:         {{ActionConfirm, Confirmed, KindForward}, {ActionCancel, Cancelled, KindCancel}},
	Confirmed:       {{ActionPack, Packing, KindForward}, {ActionCancel, Cancelled, KindCancel}},
	Packing:         {{ActionShip, Shipping, KindForward}, {ActionCancel, Cancelled, KindCancel}},
	Shipping:        {{ActionDeliver, Delivered, KindForward}},
	CancelRequested: {{ActionApproveCancel, Cancelled, KindCancel}},
}

var customerTable = map[Status][]transition{
	Pending:   {{ActionRequestCancel, CancelRequested, KindCancel}},
	Confirmed: {{ActionRequestCancel, CancelRequested, KindCancel}},
}

var actionDisplay = map[Action]struct{ label, style string }{
	ActionConfirm:       {"Xác nhận đơn", "btn-primary"},
	ActionPack:          {"Đóng gói", "btn-primary"},
	ActionShip:          {"Giao hàng", "btn-primary"},
	ActionDeliver:       {"Đã giao hàng", "btn-success"},
	ActionCancel:        {"Hủy đơn", "btn-outline-danger"},
	ActionApproveCancel: {"Duyệt yêu cầu hủy", "btn-danger"},
	ActionRequestCancel: {"Yêu cầu hủy đơn", "btn-outline-danger"},
}

func tableFor(a Actor) map[Status][]transition {
	if a == ActorCustomer {
		return customerTable
	}
	return adminTable
}

// ParseAction accepts the action names case-insensitively.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := actionDisplay[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

// NextStatus is the only place a status change is decided. Anything not in
// the table for actor is ErrInvalidTransition.
func NextStatus(from Status, action Action, actor Actor) (Status, error) {
	if _, ok := actionDisplay[action]; !ok {
		return "", ErrUnknownAction
	}
	for _, t := range tableFor(actor)[from] {
		if t.action == action {
			return t.to, nil
		}
	}
	return "", ErrInvalidTransition
}

// ActionView is one button rendered next to an order.
type ActionView struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
	Kind   Kind   `json:"kind"`
	Style  string `json:"style"`
	Target Status `json:"target"`
}

func actions(s Status, actor Actor) []ActionView {
	rows := tableFor(actor)[s]
	out := make([]ActionView, 0, len(rows))
	for _, t := range rows {
		d := actionDisplay[t.action]
		out = append(out, ActionView{Action: t.action, Label: d.label, Kind: t.kind, Style: d.style, Target: t.to})
	}
	return out
}

func AdminActions(s Status) []ActionView    { return actions(s, ActorAdmin) }
func CustomerActions(s Status) []ActionView { return actions(s, ActorCustomer) }

// ForwardAction returns the single advancing step for admins, if any.
func ForwardAction(s Status) (ActionView, bool) {
	for _, a := range AdminActions(s) {
		if a.Kind == KindForward {
			return a, true
		}
	}
	return ActionView{}, false
}
