package view

type SessionUser struct {
	ID        *int64 `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	FullName  string `json:"full_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SessionInfo is what the browser needs to draw the header and run the
// route guards.
type SessionInfo struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	IsStaff       bool         `json:"is_staff"`
	ShowPopup     bool         `json:"show_popup"`
}
