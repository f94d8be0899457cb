package model

type Address struct {
	Line1   string `json:"addressLine1"`
	Line2   string `json:"addressLine2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

type UserProfile struct {
	UserID      int64  `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Line1       string `json:"addressLineOne"`
	Line2       string `json:"addressLineTwo,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
}

// Address returns the profile's saved address as a shipping/billing address.
func (p UserProfile) Address() Address {
	return Address{
		Line1:   p.Line1,
		Line2:   p.Line2,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}

// AuthIdentity is the currently authenticated user as seen by this client.
// Created on a successful callback exchange, destroyed on logout.
type AuthIdentity struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
	Token       string   `json:"-"`
}
