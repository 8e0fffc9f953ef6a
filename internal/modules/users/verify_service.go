package users

import (
	"context"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	MsgEmailVerified     = "Xác thực email thành công. Bạn có thể đăng nhập."
	MsgVerifyLinkInvalid = "Liên kết xác thực không hợp lệ hoặc đã hết hạn."
)

type verifyAPI interface {
	VerifyEmail(ctx context.Context, token string) error
}

type VerifyService struct{ api verifyAPI }

func NewVerifyService(api verifyAPI) *VerifyService { return &VerifyService{api: api} }

// Verify confirms the address behind a link from the registration email.
func (s *VerifyService) Verify(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.InvalidErr(MsgVerifyLinkInvalid, nil)
	}
	if err := s.api.VerifyEmail(ctx, token); err != nil {
		if apperr.IsKind(err, apperr.Unavailable) {
			return "", err
		}
		return "", &apperr.AppError{Kind: apperr.Invalid, PublicMsg: apperr.MessageOr(err, MsgVerifyLinkInvalid), Err: err}
	}
	return MsgEmailVerified, nil
}
