package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	MsgLoginFailed    = "Đăng nhập thất bại. Vui lòng kiểm tra lại tên đăng nhập và mật khẩu."
	MsgRegisterFailed = "Đăng ký thất bại. Vui lòng thử lại."
	MsgMissingLogin   = "Vui lòng nhập tên đăng nhập và mật khẩu."
	MsgBadAuthReply   = "Máy chủ trả về phản hồi đăng nhập không hợp lệ."
)

type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (backend.AuthResponse, error)
	Register(ctx context.Context, in backend.RegisterInput) (backend.AuthResponse, error)
}

type Options struct {
	TTL                time.Duration
	TokenClaimFallback bool
	Logger             *slog.Logger
}

type Store struct {
	storage  Storage
	auth     Authenticator
	ttl      time.Duration
	fallback bool
	log      *slog.Logger
}

func NewStore(st Storage, auth Authenticator, opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{storage: st, auth: auth, ttl: opts.TTL, fallback: opts.TokenClaimFallback, log: opts.Logger}
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Login authenticates against the backend and starts a fresh session.
// prev, when given, is replaced: its id is discarded and only the popup
// flag carries over.
func (s *Store) Login(ctx context.Context, prev *Session, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.InvalidErr(MsgMissingLogin, map[string]string{"identifier": MsgMissingLogin})
	}
	res, err := s.auth.Login(ctx, identifier, password)
	if err != nil {
		return nil, authFailure(err, MsgLoginFailed)
	}
	return s.start(ctx, prev, res)
}

// Register creates the account and signs it in straight away; email
// verification is enforced by the backend, not here.
func (s *Store) Register(ctx context.Context, prev *Session, in backend.RegisterInput) (*Session, error) {
	res, err := s.auth.Register(ctx, in)
	if err != nil {
		return nil, authFailure(err, MsgRegisterFailed)
	}
	return s.start(ctx, prev, res)
}

// Anonymous creates a session with no token, used to hold UI state for
// guests.
func (s *Store) Anonymous(ctx context.Context) (*Session, error) {
	sess := &Session{ID: uuid.NewString()}
	if err := s.storage.Put(ctx, sess.ID, Record{}, s.ttl); err != nil {
		return nil, apperr.Wrap(err)
	}
	return sess, nil
}

func (s *Store) start(ctx context.Context, prev *Session, res backend.AuthResponse) (*Session, error) {
	if res.Token == "" {
		return nil, &apperr.AppError{Kind: apperr.Unavailable, PublicMsg: MsgBadAuthReply, Err: errors.New("auth response without token")}
	}
	sess := &Session{ID: uuid.NewString(), Token: res.Token, User: res.User}
	if sess.User == nil && s.fallback {
		sess.User, _ = UserFromToken(res.Token)
	}
	if prev != nil {
		sess.UI.PopupShown = prev.UI.PopupShown
		s.Logout(ctx, prev.ID)
	}
	if err := s.storage.Put(ctx, sess.ID, Record{Token: sess.Token, User: sess.User, UI: sess.UI}, s.ttl); err != nil {
		return nil, apperr.Wrap(err)
	}
	s.log.InfoContext(ctx, "session_started", slog.String("username", sess.Username()), slog.String("role", sess.Role()))
	return sess, nil
}

// Logout drops everything stored for id. It never fails; storage errors
// are only logged.
func (s *Store) Logout(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "session_delete_failed", slog.String("session_id", id), slog.Any("err", err))
	}
}

// Load returns ErrNotFound for unknown or expired ids. A stored user is
// trusted as-is; a token without a user falls back to the token claims
// when enabled.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rec, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: id, Token: rec.Token, User: rec.User, UI: rec.UI}
	if sess.User == nil && sess.Token != "" && s.fallback {
		sess.User, _ = UserFromToken(sess.Token)
	}
	return sess, nil
}

func (s *Store) SaveUI(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrNotFound
	}
	return s.storage.SaveUI(ctx, sess.ID, sess.UI)
}

// UpdateUser replaces the stored profile, e.g. after a profile edit.
func (s *Store) UpdateUser(ctx context.Context, sess *Session, u backend.User) error {
	sess.User = &u
	return s.storage.Put(ctx, sess.ID, Record{Token: sess.Token, User: sess.User, UI: sess.UI}, s.ttl)
}

func authFailure(err error, fallback string) error {
	ae, _ := apperr.As(err)
	kind := apperr.Unauthorized
	var fields map[string]string
	if ae != nil {
		fields = ae.Fields
		switch ae.Kind {
		case apperr.Unavailable, apperr.Internal, apperr.Conflict:
			kind = ae.Kind
		case apperr.Invalid:
			if len(fields) > 0 {
				kind = apperr.Invalid
			}
		}
	}
	return &apperr.AppError{Kind: kind, PublicMsg: apperr.MessageOr(err, fallback), Fields: fields, Err: err}
}
