package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress("123 Main St", "Kelowna", "bc", "v1x 5v1")
	require.NoError(t, err)
	assert.Equal(t, "V1X5V1", addr.PostalCode())
	assert.Equal(t, "BC", addr.Province())
	assert.Equal(t, "CA", addr.Country())
	assert.False(t, addr.IsEmpty())
}

func TestNewAddress_RequiresPostalCode(t *testing.T) {
	_, err := NewAddress("123 Main St", "Kelowna", "BC", "")
	assert.Error(t, err)
}

func TestNewAddress_Options(t *testing.T) {
	addr, err := NewAddress("123 Main St", "Whitehorse", "YT", "Y1A 2C6",
		WithLine2("Unit 4"), WithCountry("ca"))
	require.NoError(t, err)
	assert.Equal(t, "Unit 4", addr.Line2())
	assert.Equal(t, "CA", addr.Country())
	assert.Equal(t, "Y1A2C6", addr.PostalCode())
}

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1x 5v1", "V1X5V1"},
		{" Y1A2C6 ", "Y1A2C6"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePostalCode(tt.in))
	}
}

func TestEmptyAddress(t *testing.T) {
	assert.True(t, EmptyAddress().IsEmpty())
	assert.Equal(t, "", EmptyAddress().String())
}

func TestAddress_String(t *testing.T) {
	addr := MustNewAddress("123 Main St", "Kelowna", "BC", "V1X5V1")
	assert.Equal(t, "123 Main St, Kelowna, BC, V1X5V1", addr.String())
}
