// Package users covers the account pages: profile with avatar upload,
// password reset and email verification.
package users

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/storage"
)

const (
	MsgProfileSaved  = "Cập nhật thông tin thành công."
	MsgPhoneInvalid  = "Số điện thoại không hợp lệ."
	MsgNameTooLong   = "Họ tên tối đa 100 ký tự."
	AvatarFolder     = "avatars"
	maxFullNameRunes = 100
)

var phoneRe = regexp.MustCompile(`^(\+84|0)[0-9]{9,10}$`)

type profileAPI interface {
	GetProfile(ctx context.Context, token string) (backend.User, error)
	UpdateProfile(ctx context.Context, token string, in backend.ProfileInput) (backend.User, error)
}

type userSaver interface {
	UpdateUser(ctx context.Context, sess *session.Session, u backend.User) error
}

type ProfileService struct {
	api     profileAPI
	store   userSaver
	storage storage.Storage
	log     *slog.Logger
}

func NewProfileService(api profileAPI, store userSaver, st storage.Storage, l *slog.Logger) *ProfileService {
	if l == nil {
		l = slog.Default()
	}
	return &ProfileService{api: api, store: store, storage: st, log: l}
}

// Get reads the profile from the backend and refreshes the session copy.
func (s *ProfileService) Get(ctx context.Context, sess *session.Session) (backend.User, error) {
	u, err := s.api.GetProfile(ctx, sess.Token)
	if err != nil {
		return backend.User{}, err
	}
	return s.remember(ctx, sess, u), nil
}

type Avatar struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type ProfileInput struct {
	FullName string
	Phone    string
	Address  string
	Avatar   *Avatar
}

func (in ProfileInput) validate() error {
	fields := map[string]string{}
	if len([]rune(strings.TrimSpace(in.FullName))) > maxFullNameRunes {
		fields["full_name"] = MsgNameTooLong
	}
	if p := normalizePhone(in.Phone); p != "" && !phoneRe.MatchString(p) {
		fields["phone"] = MsgPhoneInvalid
	}
	if len(fields) == 0 {
		return nil
	}
	msg := fields["full_name"]
	if msg == "" {
		msg = fields["phone"]
	}
	return apperr.InvalidErr(msg, fields)
}

func normalizePhone(p string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(p))
}

// Update stores a new avatar first, then sends the profile with the
// avatar's public URL. If the backend refuses, the fresh upload is removed.
func (s *ProfileService) Update(ctx context.Context, sess *session.Session, in ProfileInput) (backend.User, error) {
	if err := in.validate(); err != nil {
		return backend.User{}, err
	}

	req := backend.ProfileInput{
		FullName: strings.TrimSpace(in.FullName),
		Phone:    normalizePhone(in.Phone),
		Address:  strings.TrimSpace(in.Address),
	}
	if sess.User != nil {
		req.AvatarURL = sess.User.AvatarURL
	}

	var uploaded *storage.PutResult
	if in.Avatar != nil {
		res, err := s.storage.Put(ctx, in.Avatar.Body, storage.PutInput{
			Folder:      AvatarFolder,
			Filename:    in.Avatar.Filename,
			ContentType: in.Avatar.ContentType,
			Size:        in.Avatar.Size,
		})
		if err != nil {
			if _, ok := apperr.As(err); ok {
				return backend.User{}, err
			}
			return backend.User{}, apperr.UnavailableErr("Không thể tải ảnh lên. Vui lòng thử lại.", err)
		}
		uploaded = &res
		req.AvatarURL = res.URL
	}

	u, err := s.api.UpdateProfile(ctx, sess.Token, req)
	if err != nil {
		if uploaded != nil {
			if derr := s.storage.Delete(ctx, uploaded.Key); derr != nil {
				s.log.WarnContext(ctx, "avatar_cleanup_failed", slog.String("key", uploaded.Key), slog.Any("err", derr))
			}
		}
		return backend.User{}, err
	}
	return s.remember(ctx, sess, u), nil
}

// remember keeps the role from the session when the profile endpoint
// omits it.
func (s *ProfileService) remember(ctx context.Context, sess *session.Session, u backend.User) backend.User {
	if u.Role == "" && sess.User != nil {
		u.Role = sess.User.Role
	}
	if err := s.store.UpdateUser(ctx, sess, u); err != nil {
		s.log.WarnContext(ctx, "session_user_update_failed", slog.Any("err", err))
	}
	return u
}
