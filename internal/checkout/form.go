package checkout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bytebazaar-storefront/internal/model"
)

// ErrBillingLocked is returned when billing fields are edited while they are
// derived from the shipping address.
var ErrBillingLocked = errors.New("billing address is locked to the shipping address")

// CardInput is raw card entry. It lives only inside an active form and is
// wiped once the order is placed; rendering always goes through Masked.
type CardInput struct {
	Number      string
	CVV         string
	ExpiryMonth int
	ExpiryYear  int
	HolderName  string
}

func (c CardInput) Masked() string {
	digits := digitsOnly(c.Number)
	if len(digits) <= 4 {
		return digits
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// PaymentInput is the tagged choice between paying with a saved method and
// entering a new card. Each variant carries only the fields that mode needs
// and validates by its own rules.
type PaymentInput interface {
	validate() error
}

type SavedMethodInput struct {
	Method *model.PaymentMethod
}

func (in *SavedMethodInput) validate() error {
	if in.Method == nil {
		return fmt.Errorf("no payment method selected")
	}
	return nil
}

type NewCardInput struct {
	Card CardInput
	Save bool
}

func (in *NewCardInput) validate() error {
	digits := digitsOnly(in.Card.Number)
	if digits == "" {
		return fmt.Errorf("card number is required")
	}
	if in.Card.CVV == "" {
		return fmt.Errorf("security code is required")
	}
	if in.Card.ExpiryMonth < 1 || in.Card.ExpiryMonth > 12 {
		return fmt.Errorf("expiration month must be between 1 and 12")
	}
	if in.Card.ExpiryYear < time.Now().Year() {
		return fmt.Errorf("card is expired")
	}
	if strings.TrimSpace(in.Card.HolderName) == "" {
		return fmt.Errorf("name on card is required")
	}
	return nil
}

// minSaveCardDigits is the sanity floor a brand-new card number must clear
// before a save attempt is made against the backend.
const minSaveCardDigits = 13

// PaymentForm is the step-2 checkout form: a payment input variant plus the
// billing address choice. The entry handler edits it while order placement
// reads and wipes it, so it carries its own lock. Fields that a mode disables
// are exempt from validation because the variant for that mode simply does
// not carry them.
type PaymentForm struct {
	mu             sync.Mutex
	input          PaymentInput
	sameAsShipping bool
	billing        model.Address
	shipping       model.Address
}

// NewPaymentForm starts in manual-entry mode with billing mirroring the
// profile's shipping address, the state a fresh checkout lands in.
func NewPaymentForm(shipping model.Address) *PaymentForm {
	f := &PaymentForm{
		input:    &NewCardInput{},
		shipping: shipping,
	}
	f.setSameAsShipping(true)
	return f
}

// SelectSavedMethod switches to saved-method mode. A method that carries its
// own billing address wins over the shipping address, so same-as-shipping is
// forced off and the method's address installed; a method without one forces
// it back on.
func (f *PaymentForm) SelectSavedMethod(method *model.PaymentMethod) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.input = &SavedMethodInput{Method: method}
	if method != nil && method.HasBillingAddress() {
		f.sameAsShipping = false
		f.billing = method.Billing
	} else {
		f.setSameAsShipping(true)
	}
}

// EnterNewCard switches back to manual entry with cleared card fields.
func (f *PaymentForm) EnterNewCard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = &NewCardInput{}
}

func (f *PaymentForm) SetCard(card CardInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	in, ok := f.input.(*NewCardInput)
	if !ok {
		return fmt.Errorf("card fields are populated from the saved method")
	}
	in.Card = card
	return nil
}

func (f *PaymentForm) SetSaveMethod(save bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in, ok := f.input.(*NewCardInput); ok {
		in.Save = save
	}
}

// SetSameAsShipping toggles the billing-mirrors-shipping mode. Turning it on
// derives the billing fields from shipping and locks them; turning it off
// restores empty, editable fields rather than stale mirrored values.
func (f *PaymentForm) SetSameAsShipping(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setSameAsShipping(on)
}

func (f *PaymentForm) ToggleSameAsShipping() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setSameAsShipping(!f.sameAsShipping)
}

// setSameAsShipping is the lock-free core of the toggle. Caller holds f.mu
// or has exclusive ownership of the form.
func (f *PaymentForm) setSameAsShipping(on bool) {
	f.sameAsShipping = on
	if on {
		f.billing = f.shipping
	} else {
		f.billing = model.Address{}
	}
}

func (f *PaymentForm) SetBillingAddress(addr model.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sameAsShipping {
		return ErrBillingLocked
	}
	f.billing = addr
	return nil
}

func (f *PaymentForm) SameAsShipping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sameAsShipping
}

func (f *PaymentForm) BillingAddress() model.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.billing
}

func (f *PaymentForm) Input() PaymentInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// pendingSave reports the card and billing details for a requested
// save-on-file, copied out under the form lock. ok is false when the active
// mode is not a new card or no save was requested.
func (f *PaymentForm) pendingSave() (card CardInput, billing model.Address, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	in, isNew := f.input.(*NewCardInput)
	if !isNew || !in.Save {
		return CardInput{}, model.Address{}, false
	}
	return in.Card, f.billing, true
}

// Validate applies the active mode's rules plus the billing rules. Locked
// billing fields are derived and therefore always pass.
func (f *PaymentForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.input.validate(); err != nil {
		return err
	}

	if !f.sameAsShipping {
		if f.billing.Line1 == "" || f.billing.City == "" || f.billing.State == "" || f.billing.ZipCode == "" {
			return fmt.Errorf("billing address is incomplete")
		}
	}

	if in, ok := f.input.(*NewCardInput); ok && in.Save {
		if len(digitsOnly(in.Card.Number)) < minSaveCardDigits {
			return fmt.Errorf("card number is too short to save")
		}
	}
	return nil
}

// WipeCard clears raw card data once it is no longer needed.
func (f *PaymentForm) WipeCard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in, ok := f.input.(*NewCardInput); ok {
		f.input = &NewCardInput{Save: in.Save}
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
