package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GatewayError is returned when the gateway answers with a non-2xx status
// other than a decline.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %d: %s", e.StatusCode, e.Body)
}

// HTTPGateway posts charges as JSON to an external payment service.
// A 402 response is a decline.
type HTTPGateway struct {
	httpClient *http.Client
	url        string
}

func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

type chargeResponse struct {
	Ref    string `json:"ref"`
	Amount int    `json:"amount"`
}

func (g *HTTPGateway) Charge(ctx context.Context, c Charge) (Receipt, error) {
	const op = "payment.HTTPGateway.Charge"

	if c.Amount <= 0 {
		return Receipt{}, fmt.Errorf("%s:%w", op, ErrInvalidAmount)
	}

	body, err := json.Marshal(c)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Reference != "" {
		req.Header.Set("Idempotency-Key", c.Reference)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	if res.StatusCode == http.StatusPaymentRequired {
		return Receipt{}, fmt.Errorf("%s:%w", op, ErrDeclined)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return Receipt{}, fmt.Errorf("%s:%w", op, &GatewayError{
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		})
	}

	var out chargeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Receipt{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	if out.Ref == "" {
		return Receipt{}, fmt.Errorf("%s: gateway returned no reference", op)
	}
	if out.Amount == 0 {
		out.Amount = c.Amount
	}

	return Receipt{Ref: out.Ref, Amount: out.Amount}, nil
}
