package checkout

import (
	"testing"

	"bytebazaar-storefront/internal/model"
)

var testShipping = model.Address{
	Line1:   "123 Main Street",
	City:    "New York",
	State:   "NY",
	ZipCode: "10001",
	Country: "United States",
}

func validCard() CardInput {
	return CardInput{
		Number:      "4532015112830366",
		CVV:         "123",
		ExpiryMonth: 12,
		ExpiryYear:  2031,
		HolderName:  "John Doe",
	}
}

func TestToggleSameAsShippingTwiceRestoresEmptyEditableFields(t *testing.T) {
	form := NewPaymentForm(testShipping)

	// fresh form mirrors shipping
	if !form.SameAsShipping() {
		t.Fatal("fresh form should mirror the shipping address")
	}
	if form.BillingAddress() != testShipping {
		t.Fatalf("billing = %+v, want shipping address", form.BillingAddress())
	}

	form.ToggleSameAsShipping()
	if form.SameAsShipping() {
		t.Error("first toggle should disable mirroring")
	}
	if !form.BillingAddress().IsZero() {
		t.Errorf("billing after toggle off = %+v, want empty fields, not stale mirror", form.BillingAddress())
	}

	form.ToggleSameAsShipping()
	form.ToggleSameAsShipping()
	if form.SameAsShipping() {
		t.Error("double toggle should land back on manual entry")
	}
	if !form.BillingAddress().IsZero() {
		t.Errorf("billing after double toggle = %+v, want empty", form.BillingAddress())
	}
}

func TestSelectSavedMethodBillingAddressDrivesToggle(t *testing.T) {
	withAddress := &model.PaymentMethod{
		PaymentID: 1,
		CardLast4: "4532",
		Billing: model.Address{
			Line1:   "456 Business Ave",
			City:    "New York",
			State:   "NY",
			ZipCode: "10002",
			Country: "United States",
		},
	}
	withoutAddress := &model.PaymentMethod{PaymentID: 2, CardLast4: "5555"}

	form := NewPaymentForm(testShipping)

	form.SelectSavedMethod(withAddress)
	if form.SameAsShipping() {
		t.Error("a method with its own billing address must force same-as-shipping off")
	}
	if form.BillingAddress() != withAddress.Billing {
		t.Errorf("billing = %+v, want the method's own address", form.BillingAddress())
	}

	form.SelectSavedMethod(withoutAddress)
	if !form.SameAsShipping() {
		t.Error("a method without a billing address must force same-as-shipping on")
	}
	if form.BillingAddress() != testShipping {
		t.Errorf("billing = %+v, want the shipping address", form.BillingAddress())
	}
}

func TestValidateSavedMethodIgnoresCardFields(t *testing.T) {
	form := NewPaymentForm(testShipping)
	form.SelectSavedMethod(&model.PaymentMethod{PaymentID: 1, CardLast4: "4532"})

	if err := form.Validate(); err != nil {
		t.Errorf("saved-method mode must not require raw card fields: %v", err)
	}

	if err := form.SetCard(validCard()); err == nil {
		t.Error("card fields should be locked while a saved method is selected")
	}
}

func TestValidateNewCard(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CardInput)
		wantErr bool
	}{
		{"valid", func(c *CardInput) {}, false},
		{"missing number", func(c *CardInput) { c.Number = "" }, true},
		{"missing cvv", func(c *CardInput) { c.CVV = "" }, true},
		{"bad month", func(c *CardInput) { c.ExpiryMonth = 13 }, true},
		{"expired year", func(c *CardInput) { c.ExpiryYear = 2019 }, true},
		{"missing holder", func(c *CardInput) { c.HolderName = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewPaymentForm(testShipping)
			card := validCard()
			tt.mutate(&card)
			if err := form.SetCard(card); err != nil {
				t.Fatal(err)
			}

			err := form.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateManualBillingRequired(t *testing.T) {
	form := NewPaymentForm(testShipping)
	if err := form.SetCard(validCard()); err != nil {
		t.Fatal(err)
	}

	form.SetSameAsShipping(false)
	if err := form.Validate(); err == nil {
		t.Error("manual billing mode with empty fields must fail validation")
	}

	if err := form.SetBillingAddress(testShipping); err != nil {
		t.Fatal(err)
	}
	if err := form.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateSaveRequiresMinimumCardLength(t *testing.T) {
	form := NewPaymentForm(testShipping)
	card := validCard()
	card.Number = "4532 0151"
	if err := form.SetCard(card); err != nil {
		t.Fatal(err)
	}

	if err := form.Validate(); err != nil {
		t.Fatalf("without a save request the short number is tolerated: %v", err)
	}

	form.SetSaveMethod(true)
	if err := form.Validate(); err == nil {
		t.Error("save request with a short card number must be rejected before any save attempt")
	}
}

func TestSetBillingAddressLockedWhileMirroring(t *testing.T) {
	form := NewPaymentForm(testShipping)

	err := form.SetBillingAddress(model.Address{Line1: "x"})
	if err != ErrBillingLocked {
		t.Errorf("SetBillingAddress while mirroring = %v, want ErrBillingLocked", err)
	}
}

func TestCardMasking(t *testing.T) {
	card := CardInput{Number: "4532 0151 1283 0366"}
	if got, want := card.Masked(), "**** **** **** 0366"; got != want {
		t.Errorf("Masked() = %q, want %q", got, want)
	}

	short := CardInput{Number: "366"}
	if got := short.Masked(); got != "366" {
		t.Errorf("Masked() short = %q", got)
	}
}

func TestWipeCardClearsRawDataKeepsSaveFlag(t *testing.T) {
	form := NewPaymentForm(testShipping)
	if err := form.SetCard(validCard()); err != nil {
		t.Fatal(err)
	}
	form.SetSaveMethod(true)

	form.WipeCard()

	in, ok := form.Input().(*NewCardInput)
	if !ok {
		t.Fatal("expected new-card mode after wipe")
	}
	if in.Card.Number != "" || in.Card.CVV != "" {
		t.Error("raw card data must not survive a wipe")
	}
	if !in.Save {
		t.Error("save flag should survive the wipe")
	}
}
