package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

func TestCashGateway(t *testing.T) {
	rcpt, err := CashGateway{}.Charge(context.Background(), Charge{Amount: 250, Method: domain.PayCash})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rcpt.Amount != 250 || !strings.HasPrefix(rcpt.Ref, "cash-") {
		t.Fatalf("unexpected receipt %+v", rcpt)
	}

	if _, err := (CashGateway{}).Charge(context.Background(), Charge{Amount: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestHTTPGateway_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "bk-1" {
			t.Errorf("expected idempotency key bk-1, got %q", got)
		}

		var c Charge
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			t.Errorf("decode: %v", err)
		}
		if c.Amount != 600 || c.Method != domain.PayCard {
			t.Errorf("unexpected charge %+v", c)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ref":"ch_123","amount":600}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, time.Second)

	rcpt, err := gw.Charge(context.Background(), Charge{
		Amount:    600,
		Method:    domain.PayCard,
		Reference: "bk-1",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rcpt.Ref != "ch_123" || rcpt.Amount != 600 {
		t.Fatalf("unexpected receipt %+v", rcpt)
	}
}

func TestHTTPGateway_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"declined", http.StatusPaymentRequired, `{"error":"insufficient funds"}`, func(err error) bool {
			return errors.Is(err, ErrDeclined)
		}},
		{"server error", http.StatusBadGateway, "upstream down", func(err error) bool {
			var ge *GatewayError
			return errors.As(err, &ge) && ge.StatusCode == http.StatusBadGateway && ge.Body == "upstream down"
		}},
		{"no reference", http.StatusOK, `{"amount":10}`, func(err error) bool {
			return err != nil && strings.Contains(err.Error(), "no reference")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTPGateway(srv.URL, time.Second).Charge(context.Background(), Charge{Amount: 10, Method: domain.PayUPI})
			if !tc.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

type stubGateway struct {
	calls int
}

func (s *stubGateway) Charge(_ context.Context, c Charge) (Receipt, error) {
	s.calls++
	return Receipt{Ref: "online", Amount: c.Amount}, nil
}

func TestRouter(t *testing.T) {
	online := &stubGateway{}
	r := NewRouter(online)

	rcpt, err := r.Charge(context.Background(), Charge{Amount: 100, Method: domain.PayWallet})
	if err != nil || rcpt.Ref != "online" {
		t.Fatalf("expected online receipt, got %+v, %v", rcpt, err)
	}

	rcpt, err = r.Charge(context.Background(), Charge{Amount: 100, Method: domain.PayCash})
	if err != nil || !strings.HasPrefix(rcpt.Ref, "cash-") {
		t.Fatalf("expected cash receipt, got %+v, %v", rcpt, err)
	}
	if online.calls != 1 {
		t.Fatalf("expected one online call, got %d", online.calls)
	}

	cashOnly := NewRouter(nil)
	if _, err := cashOnly.Charge(context.Background(), Charge{Amount: 100, Method: domain.PayCard}); !errors.Is(err, ErrMethodNotSupported) {
		t.Fatalf("expected ErrMethodNotSupported, got %v", err)
	}
}
