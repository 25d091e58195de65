package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
)

var (
	ErrDeclined           = errors.New("payment declined")
	ErrMethodNotSupported = errors.New("payment method not supported")
	ErrInvalidAmount      = errors.New("payment amount must be positive")
)

type Charge struct {
	Amount      int                  `json:"amount"`
	Description string               `json:"description"`
	Method      domain.PaymentMethod `json:"method"`
	// Reference lets the gateway deduplicate retries of the same charge.
	Reference string `json:"reference"`
}

type Receipt struct {
	Ref    string `json:"ref"`
	Amount int    `json:"amount"`
}

// Gateway collects money for a booking. Implementations must not be called
// with a zero amount.
type Gateway interface {
	Charge(ctx context.Context, c Charge) (Receipt, error)
}

// CashGateway settles at the counter; the receipt is issued on the spot.
type CashGateway struct{}

func (CashGateway) Charge(_ context.Context, c Charge) (Receipt, error) {
	if c.Amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	return Receipt{Ref: "cash-" + uuid.NewString(), Amount: c.Amount}, nil
}

// Router picks a gateway by payment method.
type Router struct {
	byMethod map[domain.PaymentMethod]Gateway
}

// NewRouter sends cash to the counter and every other method to online.
// A nil online gateway leaves only cash available.
func NewRouter(online Gateway) *Router {
	r := &Router{byMethod: map[domain.PaymentMethod]Gateway{
		domain.PayCash: CashGateway{},
	}}
	if online != nil {
		r.byMethod[domain.PayCard] = online
		r.byMethod[domain.PayUPI] = online
		r.byMethod[domain.PayWallet] = online
	}
	return r
}

func (r *Router) Charge(ctx context.Context, c Charge) (Receipt, error) {
	const op = "payment.Router.Charge"

	gw, ok := r.byMethod[c.Method]
	if !ok {
		return Receipt{}, fmt.Errorf("%s:%w: %q", op, ErrMethodNotSupported, c.Method)
	}

	rcpt, err := gw.Charge(ctx, c)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	return rcpt, nil
}
