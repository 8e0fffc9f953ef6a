// Package session keeps the signed-in user's token, profile and UI state
// on the server. The browser only holds the session id in a signed cookie.
package session

import (
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/voucher"
)

// UIState is per-session presentation state. It lives exactly as long as
// the session: logout drops it together with the token.
type UIState struct {
	PopupShown bool                 `json:"popup_shown"`
	Voucher    *voucher.Application `json:"voucher,omitempty"`
}

type Session struct {
	ID    string
	Token string
	User  *backend.User
	UI    UIState
}

// IsAuthenticated is true exactly when a token is present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

func (s *Session) Username() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Username
}

func (s *Session) Role() string {
	if s == nil || s.User == nil {
		return ""
	}
	return NormalizeRole(s.User.Role)
}

// IsStaff reports whether the user may open the back-office.
func (s *Session) IsStaff() bool {
	return s.IsAuthenticated() && IsStaffRole(s.Role())
}

const (
	RoleAdmin     = "ADMIN"
	RoleSales     = "SALES"
	RoleWarehouse = "WAREHOUSE"
	RoleMarketing = "MARKETING"
	RoleCustomer  = "CUSTOMER"
)

var staffRoles = map[string]bool{
	RoleAdmin:     true,
	RoleSales:     true,
	RoleWarehouse: true,
	RoleMarketing: true,
}

// NormalizeRole upper-cases role and strips a Spring style "ROLE_" prefix.
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(r, "ROLE_")
}

func IsStaffRole(role string) bool { return staffRoles[NormalizeRole(role)] }
