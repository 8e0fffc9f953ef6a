package payments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

type walletAPI interface {
	GetWallet(ctx context.Context, token string) (backend.Wallet, error)
}

// Service backs the wallet page and the MoMo redirects.
type Service struct {
	wallet   walletAPI
	provider Provider
}

func NewService(w walletAPI, p Provider) *Service {
	return &Service{wallet: w, provider: p}
}

func (s *Service) Balance(ctx context.Context, token string) (decimal.Decimal, error) {
	w, err := s.wallet.GetWallet(ctx, token)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Balance, nil
}

// Deposit returns the page the user is redirected to in order to top up.
func (s *Service) Deposit(ctx context.Context, token string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	return s.redirect(s.provider.DepositPayURL(ctx, token, amount))
}

// PayOrder returns the MoMo page for an order that was already created.
func (s *Service) PayOrder(ctx context.Context, token string, orderID int64) (string, error) {
	return s.redirect(s.provider.OrderPayURL(ctx, token, orderID))
}

func (s *Service) redirect(u string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if u == "" {
		return "", apperr.UnavailableErr(MsgNoPayURL, nil)
	}
	return u, nil
}
