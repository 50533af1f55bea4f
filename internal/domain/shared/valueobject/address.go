package valueobject

import (
	"fmt"
	"strings"
)

// Address is a value object representing a postal address
// It is immutable - all operations return new Address instances
type Address struct {
	line1      string
	line2      string
	city       string
	province   string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the second address line
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.ToUpper(strings.TrimSpace(country))
	}
}

// NewAddress creates a new Address. The postal code is required because
// carrier rating is keyed on it; the remaining fields are informational.
func NewAddress(line1, city, province, postalCode string, opts ...AddressOption) (Address, error) {
	addr := Address{
		line1:      strings.TrimSpace(line1),
		city:       strings.TrimSpace(city),
		province:   strings.ToUpper(strings.TrimSpace(province)),
		postalCode: NormalizePostalCode(postalCode),
		country:    "CA",
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if addr.postalCode == "" {
		return Address{}, fmt.Errorf("postal code is required")
	}
	if len(addr.line1) > 255 {
		return Address{}, fmt.Errorf("address line cannot exceed 255 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(line1, city, province, postalCode string, opts ...AddressOption) Address {
	addr, err := NewAddress(line1, city, province, postalCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// RehydrateAddress rebuilds an Address from stored fields without
// validation. Only persistence code should use this.
func RehydrateAddress(line1, line2, city, province, postalCode, country string) Address {
	return Address{
		line1:      line1,
		line2:      line2,
		city:       city,
		province:   province,
		postalCode: postalCode,
		country:    country,
	}
}

// NormalizePostalCode uppercases a postal code and strips interior spaces,
// so "v1x 5v1" becomes "V1X5V1".
func NormalizePostalCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the second address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// Province returns the province or state code
func (a Address) Province() string { return a.province }

// PostalCode returns the normalized postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the ISO country code
func (a Address) Country() string { return a.country }

// IsEmpty returns true if no postal code is set. A shipment without a
// destination postal code cannot be rated.
func (a Address) IsEmpty() bool {
	return a.postalCode == ""
}

// Equals returns true if all fields are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns a single-line representation of the address
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.line1, a.line2, a.city, a.province, a.postalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
