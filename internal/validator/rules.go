package validator

import (
	"log"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadharPattern = regexp.MustCompile(`^[0-9]{12}$`)
	ifscPattern   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	fyPattern     = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})$`)
)

// registerCustomRules installs the Indian-domain validation tags. Empty
// values always pass; pair with "required" when the field is mandatory.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Registration only fails on an empty tag, which is a
			// programming error worth dying for at startup.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("pan", validatePAN)
	mustRegister("aadhar", validateAadhar)
	mustRegister("ifsc", validateIFSC)
	mustRegister("fiscal_year", validateFiscalYear)
}

// validatePAN checks the permanent account number format: five letters,
// four digits, one letter.
func validatePAN(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return panPattern.MatchString(value)
}

func validateAadhar(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return aadharPattern.MatchString(value)
}

func validateIFSC(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return ifscPattern.MatchString(value)
}

// validateFiscalYear accepts "YYYY-YY" where the suffix is the next
// calendar year, e.g. 2023-24 but not 2023-25.
func validateFiscalYear(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	m := fyPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return (start+1)%100 == end
}
