package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/model"
)

type fakeBackend struct {
	profile *model.UserProfile
	methods []*model.PaymentMethod

	profileErr  error
	methodsErr  error
	saveErr     error
	checkoutErr error

	saveCalls     int
	checkoutCalls int
	refreshCalls  int
	clearCalls    int

	checkoutStarted chan struct{}
	checkoutRelease chan struct{}
	requestKeys     []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		profile: &model.UserProfile{
			UserID:    7,
			FirstName: "John",
			LastName:  "Doe",
			Line1:     "123 Main Street",
			City:      "New York",
			State:     "NY",
			ZipCode:   "10001",
			Country:   "United States",
		},
	}
}

func (f *fakeBackend) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeBackend) ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error) {
	if f.methodsErr != nil {
		return nil, f.methodsErr
	}
	return f.methods, nil
}

func (f *fakeBackend) AddPaymentMethod(ctx context.Context, req *client.PaymentMethodRequest) (*model.PaymentMethod, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &model.PaymentMethod{PaymentID: 99, CardLast4: model.Last4(req.CardNumber)}, nil
}

func (f *fakeBackend) Checkout(ctx context.Context, requestKey string) (*model.OrderConfirmation, error) {
	f.checkoutCalls++
	f.requestKeys = append(f.requestKeys, requestKey)
	if f.checkoutStarted != nil {
		close(f.checkoutStarted)
		<-f.checkoutRelease
	}
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &model.OrderConfirmation{
		TransactionID:   1234,
		Total:           5319,
		TransactionDate: time.Now(),
	}, nil
}

// cart.API backed by the same fake so the test can observe refresh/clear.
func (f *fakeBackend) GetCart(ctx context.Context) ([]*model.CartItem, error) {
	f.refreshCalls++
	return []*model.CartItem{{CartItemID: 1, ProductID: 1, UnitPrice: 1000, Quantity: 1}}, nil
}

func (f *fakeBackend) AddCartItem(ctx context.Context, productID int64, quantity int32) error {
	return nil
}

func (f *fakeBackend) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) error {
	return nil
}

func (f *fakeBackend) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	return nil
}

func (f *fakeBackend) ClearCart(ctx context.Context) error {
	f.clearCalls++
	return nil
}

func startedFlow(t *testing.T, backend *fakeBackend) *Orchestrator {
	t.Helper()
	flow := NewOrchestrator(backend, cart.NewHolder(backend))
	if err := flow.Begin(context.Background()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	return flow
}

func TestPlaceOrderRejectedBeforeJoinCompletes(t *testing.T) {
	backend := newFakeBackend()
	flow := NewOrchestrator(backend, cart.NewHolder(backend))

	_, err := flow.PlaceOrder(context.Background())
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("PlaceOrder before Begin = %v, want ErrNotReady", err)
	}
	if backend.checkoutCalls != 0 {
		t.Error("no backend call may be made before profile and methods finish loading")
	}
}

func TestBeginFailsWhenEitherLoadFails(t *testing.T) {
	backend := newFakeBackend()
	backend.methodsErr = errors.New("methods unavailable")
	flow := NewOrchestrator(backend, cart.NewHolder(backend))

	if err := flow.Begin(context.Background()); err == nil {
		t.Fatal("Begin must fail when the payment-method load fails")
	}
	if flow.State() != StateAwaitingProfile {
		t.Errorf("state = %s, want %s", flow.State(), StateAwaitingProfile)
	}
}

func TestPlaceOrderSuccessClearsCart(t *testing.T) {
	backend := newFakeBackend()
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	confirmation, err := flow.PlaceOrder(context.Background())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if confirmation.TransactionID != 1234 {
		t.Errorf("transaction id = %d, want 1234", confirmation.TransactionID)
	}
	if flow.State() != StateCompleted {
		t.Errorf("state = %s, want %s", flow.State(), StateCompleted)
	}
	if backend.clearCalls != 1 {
		t.Errorf("cart clear calls = %d, want 1", backend.clearCalls)
	}
	if len(backend.requestKeys) != 1 || backend.requestKeys[0] == "" {
		t.Error("expected a request key on the checkout call")
	}

	in, ok := flow.Form().Input().(*NewCardInput)
	if !ok || in.Card.Number != "" {
		t.Error("raw card data must be wiped after placement")
	}
}

func TestSavePaymentMethodFailureIsNonFatal(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = errors.New("vault down")
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}
	flow.Form().SetSaveMethod(true)

	if _, err := flow.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("a failed method save must not block the purchase: %v", err)
	}
	if backend.saveCalls != 1 {
		t.Errorf("save calls = %d, want 1", backend.saveCalls)
	}
	if backend.checkoutCalls != 1 {
		t.Errorf("checkout calls = %d, want 1", backend.checkoutCalls)
	}
}

func TestPlaceOrderWithSavedMethodSkipsSave(t *testing.T) {
	backend := newFakeBackend()
	backend.methods = []*model.PaymentMethod{{PaymentID: 5, CardLast4: "4532", ExpiryMonth: 12, ExpiryYear: 2031, HolderName: "John Doe"}}
	flow := startedFlow(t, backend)

	if err := flow.SelectSavedMethod(5); err != nil {
		t.Fatal(err)
	}

	if _, err := flow.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if backend.saveCalls != 0 {
		t.Errorf("save calls = %d, want 0", backend.saveCalls)
	}
}

func TestPlaceOrderConflictClassifiedAndCartRefreshed(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutErr = &client.APIError{
		Kind:    client.KindConflict,
		Status:  409,
		Message: "Some items in your cart are out of stock.",
	}
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	refreshesBefore := backend.refreshCalls
	if _, err := flow.PlaceOrder(context.Background()); err == nil {
		t.Fatal("expected placement failure")
	}

	if flow.State() != StateError {
		t.Errorf("state = %s, want %s", flow.State(), StateError)
	}
	if msg := flow.UserError(); !strings.Contains(msg, "out of stock") {
		t.Errorf("user error = %q, want a stock/inventory message", msg)
	}
	if backend.refreshCalls != refreshesBefore+1 {
		t.Error("cart must be refreshed after a failed placement to reconcile server effects")
	}
}

func TestPlaceOrderAuthFailureMessage(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutErr = &client.APIError{Kind: client.KindAuth, Status: 401, Message: "unauthorized"}
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	if _, err := flow.PlaceOrder(context.Background()); err == nil {
		t.Fatal("expected placement failure")
	}
	if msg := flow.UserError(); !strings.Contains(msg, "logged in") {
		t.Errorf("user error = %q, want a re-authentication message", msg)
	}
}

func TestDoubleSubmitRejectedWhileInFlight(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutStarted = make(chan struct{})
	backend.checkoutRelease = make(chan struct{})
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := flow.PlaceOrder(context.Background()); err != nil {
			t.Errorf("first PlaceOrder failed: %v", err)
		}
	}()

	<-backend.checkoutStarted
	if _, err := flow.PlaceOrder(context.Background()); !errors.Is(err, ErrPlacementInFlight) {
		t.Errorf("second PlaceOrder = %v, want ErrPlacementInFlight", err)
	}
	close(backend.checkoutRelease)
	<-done

	if backend.checkoutCalls != 1 {
		t.Errorf("checkout calls = %d, want 1", backend.checkoutCalls)
	}
}

func TestConcurrentFormEditsDuringPlacement(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutStarted = make(chan struct{})
	backend.checkoutRelease = make(chan struct{})
	flow := startedFlow(t, backend)

	form := flow.Form()
	if err := form.SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := flow.PlaceOrder(context.Background()); err != nil {
			t.Errorf("PlaceOrder failed: %v", err)
		}
	}()

	// keep editing the form while the placement is in flight and through the
	// post-placement wipe
	stop := make(chan struct{})
	edits := make(chan struct{})
	go func() {
		defer close(edits)
		for {
			select {
			case <-stop:
				return
			default:
				_ = form.SetCard(validCard())
				_ = form.SameAsShipping()
				_ = form.BillingAddress()
			}
		}
	}()

	<-backend.checkoutStarted
	close(backend.checkoutRelease)
	<-done
	close(stop)
	<-edits

	if flow.State() != StateCompleted {
		t.Errorf("state = %s, want %s", flow.State(), StateCompleted)
	}
}

func TestRetryAfterErrorAllowed(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutErr = &client.APIError{Kind: client.KindServer, Status: 500, Message: "Server error. Please try again later."}
	flow := startedFlow(t, backend)

	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	if _, err := flow.PlaceOrder(context.Background()); err == nil {
		t.Fatal("expected placement failure")
	}

	backend.checkoutErr = nil
	if err := flow.Form().SetCard(validCard()); err != nil {
		t.Fatal(err)
	}
	if _, err := flow.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("retry after error should be allowed: %v", err)
	}
	if flow.State() != StateCompleted {
		t.Errorf("state = %s, want %s", flow.State(), StateCompleted)
	}
}
