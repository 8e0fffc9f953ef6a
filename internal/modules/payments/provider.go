package payments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

// Provider issues external payment pages. The only implementation delegates
// to the backend's MoMo endpoints.
type Provider interface {
	Name() string
	OrderPayURL(ctx context.Context, token string, orderID int64) (string, error)
	DepositPayURL(ctx context.Context, token string, amount decimal.Decimal) (string, error)
}

type momoAPI interface {
	CreateMomo(ctx context.Context, token string, orderID int64) (backend.PayURL, error)
	DepositMomo(ctx context.Context, token string, amount decimal.Decimal) (backend.PayURL, error)
}

type MomoProvider struct {
	api momoAPI
}

func NewMomoProvider(api momoAPI) *MomoProvider { return &MomoProvider{api: api} }

func (p *MomoProvider) Name() string { return "momo" }

func (p *MomoProvider) OrderPayURL(ctx context.Context, token string, orderID int64) (string, error) {
	out, err := p.api.CreateMomo(ctx, token, orderID)
	if err != nil {
		return "", err
	}
	return out.PayURL, nil
}

func (p *MomoProvider) DepositPayURL(ctx context.Context, token string, amount decimal.Decimal) (string, error) {
	out, err := p.api.DepositMomo(ctx, token, amount)
	if err != nil {
		return "", err
	}
	return out.PayURL, nil
}
