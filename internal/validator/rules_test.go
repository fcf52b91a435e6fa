package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panDoc struct {
	PAN string `json:"pan_number" validate:"omitempty,pan"`
}

type aadharDoc struct {
	Aadhar string `json:"aadhar_number" validate:"omitempty,aadhar"`
}

type ifscDoc struct {
	IFSC string `json:"ifsc_code" validate:"omitempty,ifsc"`
}

type fyDoc struct {
	FiscalYear string `json:"fiscal_year" validate:"omitempty,fiscal_year"`
}

func TestValidatePAN(t *testing.T) {
	v := New()

	valid := []string{"", "ABCDE1234F", "ZZZZZ9999Z"}
	for _, pan := range valid {
		assert.NoError(t, v.Validate(&panDoc{PAN: pan}), "pan %q", pan)
	}

	invalid := []string{
		"abcde1234f", // lowercase
		"ABCD1234F",  // four letters
		"ABCDE123F",  // three digits
		"ABCDE12345", // digit where letter expected
		"ABCDE1234FX",
	}
	for _, pan := range invalid {
		assert.Error(t, v.Validate(&panDoc{PAN: pan}), "pan %q", pan)
	}
}

func TestValidateAadhar(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&aadharDoc{Aadhar: ""}))
	assert.NoError(t, v.Validate(&aadharDoc{Aadhar: "123456789012"}))

	invalid := []string{"12345678901", "1234567890123", "12345678901a"}
	for _, a := range invalid {
		assert.Error(t, v.Validate(&aadharDoc{Aadhar: a}), "aadhar %q", a)
	}
}

func TestValidateIFSC(t *testing.T) {
	v := New()

	valid := []string{"", "HDFC0001234", "SBIN0ABC123"}
	for _, code := range valid {
		assert.NoError(t, v.Validate(&ifscDoc{IFSC: code}), "ifsc %q", code)
	}

	invalid := []string{
		"HDFC1001234", // fifth character must be zero
		"HDF00001234",
		"hdfc0001234",
		"HDFC000123",
	}
	for _, code := range invalid {
		assert.Error(t, v.Validate(&ifscDoc{IFSC: code}), "ifsc %q", code)
	}
}

func TestValidateFiscalYear(t *testing.T) {
	v := New()

	valid := []string{"", "2023-24", "2025-26", "1999-00"}
	for _, fy := range valid {
		assert.NoError(t, v.Validate(&fyDoc{FiscalYear: fy}), "fy %q", fy)
	}

	invalid := []string{
		"2023-25", // not consecutive
		"2023-2024",
		"23-24",
		"2023/24",
	}
	for _, fy := range invalid {
		assert.Error(t, v.Validate(&fyDoc{FiscalYear: fy}), "fy %q", fy)
	}
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	type req struct {
		Email string `json:"email" validate:"required,email"`
	}

	err := v.Validate(&req{Email: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}

func TestValidate_RequiredMessage(t *testing.T) {
	v := New()

	type req struct {
		Name string `json:"name" validate:"required"`
	}

	err := v.Validate(&req{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
}
