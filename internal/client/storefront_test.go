package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bytebazaar-storefront/internal/config"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (StorefrontClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewStorefrontClient(&config.Storefront{
		BaseApiURL:     srv.URL,
		TimeoutSeconds: 5,
	}, staticToken(token))
	return c, srv
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}, "token-123")

	if _, err := c.GetCart(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hadAuth bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]any{})
	}, "")

	if _, err := c.ListProducts(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hadAuth {
		t.Error("no Authorization header expected when logged out")
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"unauthorized", 401, "", KindAuth, "You need to be logged in. Please log in and try again."},
		{"forbidden", 403, "", KindForbidden, "You do not have permission to perform this action."},
		{"conflict default", 409, "", KindConflict, "Some items in your cart are out of stock."},
		{"conflict backend message", 409, `{"message":"Laptop Stand is out of stock"}`, KindConflict, "Laptop Stand is out of stock"},
		{"validation backend message", 400, `{"message":"quantity must be positive"}`, KindValidation, "quantity must be positive"},
		{"validation plain string", 400, `"bad cart"`, KindValidation, "bad cart"},
		{"server", 500, "", KindServer, "Server error. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "tok")

			_, err := c.GetCart(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %v is not an APIError", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestNetworkFailureClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewStorefrontClient(&config.Storefront{BaseApiURL: srv.URL, TimeoutSeconds: 1}, staticToken(""))

	_, err := c.ListProducts(context.Background())
	if !IsKind(err, KindNetwork) {
		t.Errorf("err = %v, want network kind", err)
	}
}

func TestCheckoutSendsRequestKey(t *testing.T) {
	var gotKey, gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Request-Key")
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"transactionId":   42,
			"priceCents":      5319,
			"transactionDate": "2026-08-31T12:00:00Z",
		})
	}, "tok")

	confirmation, err := c.Checkout(context.Background(), "key-1")
	if err != nil {
		t.Fatal(err)
	}

	if gotMethod != "POST" || gotPath != "/api/transactions/checkout" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotKey != "key-1" {
		t.Errorf("X-Request-Key = %q, want key-1", gotKey)
	}
	if confirmation.TransactionID != 42 || confirmation.Total != 5319 {
		t.Errorf("confirmation = %+v", confirmation)
	}
}

func TestPaymentMethodResponseKeepsLast4Only(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{
			"paymentId":           1,
			"cardNumber":          "4532015112830366", // misbehaving backend echoing the full PAN
			"cardExpirationMonth": 12,
			"cardExpirationYear":  2031,
			"nameOnCard":          "John Doe",
		}})
	}, "tok")

	methods, err := c.ListPaymentMethods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(methods) != 1 {
		t.Fatalf("got %d methods", len(methods))
	}

	if methods[0].CardLast4 != "0366" {
		t.Errorf("CardLast4 = %q, want the trailing four digits only", methods[0].CardLast4)
	}
	if got, want := methods[0].MaskedNumber(), "**** **** **** 0366"; got != want {
		t.Errorf("MaskedNumber() = %q, want %q", got, want)
	}
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode([]any{})
	}, "tok")

	if _, err := c.SearchProducts(context.Background(), "smart watch & more"); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "smart watch & more" {
		t.Errorf("q = %q", gotQuery)
	}
}
