// Package validate holds the field validators shared by the add-user form
// and the in-place row editor. Both call sites must apply the same rules.
package validate

import (
	"fmt"
	"regexp"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

// MinimumAge is exclusive: a value of exactly MinimumAge fails.
const MinimumAge = 30

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?([a-z0-9-]+\.)+[a-z]{2,}(/\S*)?$`)

func Login(value string) error {
	if value == "" {
		return fmt.Errorf("%w: username is required", model.ErrorEmptyField)
	}
	return nil
}

func Email(value string) error {
	if value == "" {
		return fmt.Errorf("%w: email is required", model.ErrorEmptyField)
	}
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("%w: invalid email format", model.ErrorInvalidFormat)
	}
	return nil
}

func Age(value *int) error {
	if value == nil || *value <= MinimumAge {
		return fmt.Errorf("%w: the minimum age is %d years", model.ErrorBelowMinimum, MinimumAge)
	}
	return nil
}

func URL(value string) error {
	if value == "" {
		return fmt.Errorf("%w: url is required", model.ErrorEmptyField)
	}
	if !urlPattern.MatchString(value) {
		return fmt.Errorf("%w: invalid url format", model.ErrorInvalidFormat)
	}
	return nil
}
