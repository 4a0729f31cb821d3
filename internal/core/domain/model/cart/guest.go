package cart

import (
	"fmt"
	"regexp"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	guestNameMinLen = 2
	guestNameMaxLen = 100

	guestPhoneMinDigits = 10
	guestPhoneMaxDigits = 11

	// GuestItemsMin and GuestItemsMax bound the number of cart entries an
	// unauthenticated caller may submit in one checkout.
	GuestItemsMin = 1
	GuestItemsMax = 50
)

var (
	guestPhonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	guestEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// GuestInfo identifies an unauthenticated buyer. All fields are validated at
// construction; any violation is a validation error, never silently fixed up.
type GuestInfo struct {
	fullName string
	phone    string
	email    string

	isConstructed bool
}

// NewGuestInfo creates validated guest contact details.
//
// Validation rules:
//   - full name: 2-100 characters
//   - phone: 10-11 digits
//   - email: RFC-shaped (local@domain.tld)
func NewGuestInfo(fullName, phone, email string) (GuestInfo, error) {
	if len(fullName) < guestNameMinLen || len(fullName) > guestNameMaxLen {
		return GuestInfo{}, errs.NewValueIsOutOfRangeError(
			"guest full name length", len(fullName), guestNameMinLen, guestNameMaxLen)
	}
	if !guestPhonePattern.MatchString(phone) {
		return GuestInfo{}, errs.NewValueIsInvalidErrorWithCause(
			"guest phone", fmt.Errorf("must be %d-%d digits", guestPhoneMinDigits, guestPhoneMaxDigits))
	}
	if !guestEmailPattern.MatchString(email) {
		return GuestInfo{}, errs.NewValueIsInvalidError("guest email")
	}

	return GuestInfo{
		fullName:      fullName,
		phone:         phone,
		email:         email,
		isConstructed: true,
	}, nil
}

// Validate ensures the GuestInfo was created through NewGuestInfo.
func (g GuestInfo) Validate() error {
	if !g.isConstructed {
		return errs.NewValueIsRequiredError("guest info must be created via NewGuestInfo")
	}
	return nil
}

// FullName returns the guest's full name.
func (g GuestInfo) FullName() string { return g.fullName }

// Phone returns the guest's phone number.
func (g GuestInfo) Phone() string { return g.phone }

// Email returns the guest's email address.
func (g GuestInfo) Email() string { return g.email }

// GuestItem is one cart entry submitted by an unauthenticated caller. The
// declared price is what the guest's client saw; the checkout transaction
// verifies it against the locked catalog price and never trusts it for the
// order total.
type GuestItem struct {
	productID     kernel.UUID
	quantity      int
	declaredPrice kernel.Money
	name          string

	isConstructed bool
}

// NewGuestItem creates a validated guest cart entry.
func NewGuestItem(productID kernel.UUID, quantity int, declaredPrice kernel.Money, name string) (GuestItem, error) {
	if err := productID.Validate(); err != nil {
		return GuestItem{}, err
	}
	if quantity <= 0 {
		return GuestItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return GuestItem{
		productID:     productID,
		quantity:      quantity,
		declaredPrice: declaredPrice,
		name:          name,
		isConstructed: true,
	}, nil
}

// Validate ensures the GuestItem was created through NewGuestItem.
func (g GuestItem) Validate() error {
	if !g.isConstructed {
		return errs.NewValueIsRequiredError("guest item must be created via NewGuestItem")
	}
	return nil
}

// ProductID returns the referenced product's identifier.
func (g GuestItem) ProductID() kernel.UUID { return g.productID }

// Quantity returns the requested quantity.
func (g GuestItem) Quantity() int { return g.quantity }

// DeclaredPrice returns the price declared by the guest's client.
func (g GuestItem) DeclaredPrice() kernel.Money { return g.declaredPrice }

// Name returns the product name as submitted by the guest's client.
func (g GuestItem) Name() string { return g.name }

// ValidateGuestItems checks the 1-50 entry bound for a guest checkout.
func ValidateGuestItems(items []GuestItem) error {
	if len(items) < GuestItemsMin || len(items) > GuestItemsMax {
		return errs.NewValueIsOutOfRangeError("guest cart items", len(items), GuestItemsMin, GuestItemsMax)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
