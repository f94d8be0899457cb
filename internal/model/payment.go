package model

import "fmt"

// PaymentMethod is a backend-held payment instrument. Only the last four
// digits ever reach this struct; the true card number and CVV exist solely
// inside an active checkout form.
type PaymentMethod struct {
	PaymentID   int64   `json:"paymentId"`
	CardLast4   string  `json:"cardLast4"`
	ExpiryMonth int     `json:"cardExpirationMonth"`
	ExpiryYear  int     `json:"cardExpirationYear"`
	HolderName  string  `json:"nameOnCard"`
	Billing     Address `json:"billingAddress,omitzero"`
}

func (m PaymentMethod) MaskedNumber() string {
	return "**** **** **** " + m.CardLast4
}

func (m PaymentMethod) Display() string {
	return fmt.Sprintf("%s (%02d/%d)", m.MaskedNumber(), m.ExpiryMonth, m.ExpiryYear)
}

// HasBillingAddress reports whether the method carries its own billing
// address, which takes precedence over the profile address at checkout.
func (m PaymentMethod) HasBillingAddress() bool {
	return !m.Billing.IsZero()
}

// Last4 keeps only the trailing four digits of a card number.
func Last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
