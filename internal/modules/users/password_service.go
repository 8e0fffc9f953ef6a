package users

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	MinPasswordLen = 6

	MsgForgotSent       = "Nếu email tồn tại trong hệ thống, chúng tôi đã gửi hướng dẫn đặt lại mật khẩu."
	MsgResetDone        = "Đặt lại mật khẩu thành công. Vui lòng đăng nhập."
	MsgResetLinkInvalid = "Liên kết đặt lại mật khẩu không hợp lệ hoặc đã hết hạn."
	MsgEmailInvalid     = "Email không hợp lệ."
	MsgPasswordShort    = "Mật khẩu phải có ít nhất 6 ký tự."
	MsgPasswordMismatch = "Mật khẩu xác nhận không khớp."
)

type passwordAPI interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type PasswordService struct {
	api passwordAPI
	log *slog.Logger
}

func NewPasswordService(api passwordAPI, l *slog.Logger) *PasswordService {
	if l == nil {
		l = slog.Default()
	}
	return &PasswordService{api: api, log: l}
}

// Forgot asks the backend to mail a reset link. Unknown addresses get the
// same answer as known ones; only an unreachable backend is reported.
func (s *PasswordService) Forgot(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", apperr.InvalidErr(MsgEmailInvalid, map[string]string{"email": MsgEmailInvalid})
	}
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		if apperr.IsKind(err, apperr.Unavailable) || apperr.IsKind(err, apperr.Internal) {
			return "", err
		}
		s.log.InfoContext(ctx, "forgot_password_rejected", slog.Any("err", err))
	}
	return MsgForgotSent, nil
}

type ResetInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

func (s *PasswordService) Reset(ctx context.Context, in ResetInput) error {
	if strings.TrimSpace(in.Token) == "" {
		return apperr.InvalidErr(MsgResetLinkInvalid, nil)
	}
	fields := map[string]string{}
	if len([]rune(in.Password)) < MinPasswordLen {
		fields["password"] = MsgPasswordShort
	}
	if in.Password != in.ConfirmPassword {
		fields["confirm_password"] = MsgPasswordMismatch
	}
	if len(fields) > 0 {
		msg := fields["password"]
		if msg == "" {
			msg = fields["confirm_password"]
		}
		return apperr.InvalidErr(msg, fields)
	}

	err := s.api.ResetPassword(ctx, in.Token, in.Password)
	if err != nil && (apperr.IsKind(err, apperr.Invalid) || apperr.IsKind(err, apperr.NotFound)) {
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: apperr.MessageOr(err, MsgResetLinkInvalid), Err: err}
	}
	return err
}
