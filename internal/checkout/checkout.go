package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/model"

	"github.com/google/uuid"
)

type State string

const (
	StateAwaitingProfile State = "awaiting_profile"
	StatePaymentEntry    State = "payment_entry"
	StatePlacing         State = "placing"
	StateCompleted       State = "completed"
	StateError           State = "error"
)

var (
	// ErrNotReady rejects order placement while the profile and payment
	// methods are still loading.
	ErrNotReady = errors.New("checkout is still loading, please wait")

	// ErrPlacementInFlight rejects a second submit while one is running.
	ErrPlacementInFlight = errors.New("an order is already being placed")
)

// API is the slice of the storefront client the checkout flow needs.
type API interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, req *client.PaymentMethodRequest) (*model.PaymentMethod, error)
	Checkout(ctx context.Context, requestKey string) (*model.OrderConfirmation, error)
}

// Orchestrator runs the checkout wizard. Shipping reuses the profile's saved
// address, so after the profile/payment-method join completes the flow sits
// in payment entry until the order is placed.
type Orchestrator struct {
	mu   sync.Mutex
	api  API
	cart *cart.Holder

	state        State
	profile      *model.UserProfile
	methods      []*model.PaymentMethod
	form         *PaymentForm
	placing      bool
	confirmation *model.OrderConfirmation
	userError    string
}

func NewOrchestrator(api API, cartHolder *cart.Holder) *Orchestrator {
	return &Orchestrator{
		api:   api,
		cart:  cartHolder,
		state: StateAwaitingProfile,
	}
}

// Begin loads the user profile and saved payment methods. Both loads must
// finish before the flow moves to payment entry; placing an order earlier is
// rejected with ErrNotReady rather than proceeding with partial data.
func (o *Orchestrator) Begin(ctx context.Context) error {
	profile, err := o.api.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	methods, err := o.api.ListPaymentMethods(ctx)
	if err != nil {
		return fmt.Errorf("load payment methods: %w", err)
	}

	o.mu.Lock()
	o.profile = profile
	o.methods = methods
	o.form = NewPaymentForm(profile.Address())
	o.state = StatePaymentEntry
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Profile() *model.UserProfile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profile
}

func (o *Orchestrator) Methods() []*model.PaymentMethod {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*model.PaymentMethod(nil), o.methods...)
}

// Form exposes the payment form while the flow is in payment entry; nil
// before the join completes.
func (o *Orchestrator) Form() *PaymentForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// SelectSavedMethod picks a stored method by id; zero means manual entry.
func (o *Orchestrator) SelectSavedMethod(paymentID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.form == nil {
		return ErrNotReady
	}
	if paymentID == 0 {
		o.form.EnterNewCard()
		return nil
	}
	for _, m := range o.methods {
		if m.PaymentID == paymentID {
			o.form.SelectSavedMethod(m)
			return nil
		}
	}
	return fmt.Errorf("unknown payment method %d", paymentID)
}

func (o *Orchestrator) Confirmation() *model.OrderConfirmation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.confirmation
}

// UserError is the display message for the last failed placement.
func (o *Orchestrator) UserError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.userError
}

// PlaceOrder validates the form and submits the order. Saving a new payment
// method, when requested, is best effort: its failure is logged and the
// purchase proceeds. On backend failure the cart is refreshed so any
// server-side partial effects are reflected locally.
func (o *Orchestrator) PlaceOrder(ctx context.Context) (*model.OrderConfirmation, error) {
	o.mu.Lock()
	if o.state == StateAwaitingProfile {
		o.mu.Unlock()
		return nil, ErrNotReady
	}
	if o.placing || o.state == StatePlacing {
		o.mu.Unlock()
		return nil, ErrPlacementInFlight
	}
	if o.state == StateCompleted {
		o.mu.Unlock()
		return nil, fmt.Errorf("order already completed")
	}

	if err := o.form.Validate(); err != nil {
		o.mu.Unlock()
		return nil, fmt.Errorf("payment form invalid: %w", err)
	}

	o.placing = true
	o.state = StatePlacing
	o.userError = ""
	saveReq := o.saveRequest()
	// one key per attempt; the backend deduplicates a resubmit of the same key
	requestKey := uuid.NewString()
	o.mu.Unlock()

	if saveReq != nil {
		if _, err := o.api.AddPaymentMethod(ctx, saveReq); err != nil {
			log.Printf("save payment method failed (continuing with order): %v", err)
		}
	}

	confirmation, err := o.api.Checkout(ctx, requestKey)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.placing = false

	if err != nil {
		o.state = StateError
		o.userError = placementMessage(err)
		// reconcile with whatever the server actually did
		if rerr := o.cart.Refresh(ctx); rerr != nil {
			log.Printf("cart refresh after failed placement: %v", rerr)
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	o.state = StateCompleted
	o.confirmation = confirmation
	o.form.WipeCard()

	if cerr := o.cart.Clear(ctx); cerr != nil {
		log.Printf("clear cart after placement: %v", cerr)
	}

	return confirmation, nil
}

// saveRequest builds the payment-method save request when the form asked for
// one. The card and billing details are copied out under the form's lock.
func (o *Orchestrator) saveRequest() *client.PaymentMethodRequest {
	card, billing, ok := o.form.pendingSave()
	if !ok {
		return nil
	}
	return &client.PaymentMethodRequest{
		CardNumber:  digitsOnly(card.Number),
		ExpiryMonth: card.ExpiryMonth,
		ExpiryYear:  card.ExpiryYear,
		HolderName:  card.HolderName,
		Line1:       billing.Line1,
		Line2:       billing.Line2,
		City:        billing.City,
		State:       billing.State,
		ZipCode:     billing.ZipCode,
		Country:     billing.Country,
	}
}

// placementMessage maps a failed placement onto a user-facing message by
// error class.
func placementMessage(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return "An error occurred while placing your order. Please try again."
	}
	switch apiErr.Kind {
	case client.KindAuth:
		return "You need to be logged in to place an order. Please log in and try again."
	case client.KindConflict:
		return apiErr.Message
	default:
		return "An error occurred while placing your order. Please try again."
	}
}
