package models

// Contact preferences accepted on the lead form.
const (
	ContactEmail  = "email"
	ContactPhone  = "phone"
	ContactEither = "either"
)

// Lead is a single contact-form submission. It is never persisted.
type Lead struct {
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone,omitempty" validate:"omitempty,phone"`
	Message          string `json:"message,omitempty" validate:"omitempty,max=1000"`
	PreferredContact string `json:"preferredContact,omitempty" validate:"omitempty,oneof=email phone either"`
	PropertyInterest string `json:"propertyInterest,omitempty"`
	PropertyType     string `json:"propertyType,omitempty"`
	PriceRange       string `json:"priceRange,omitempty"`
	CheckIn          string `json:"checkIn,omitempty"`
	CheckOut         string `json:"checkOut,omitempty"`
	Guests           string `json:"guests,omitempty"`
	Source           string `json:"source,omitempty"`

	// Website is a honeypot; people never see the input, bots fill it in.
	Website string `json:"website,omitempty"`
}
