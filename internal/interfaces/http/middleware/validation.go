package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var cardExpirationPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// SetupValidator configures gin's validator: error messages use JSON field
// names, and the card_expiration tag accepts MM/YY values.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("card_expiration", func(fl validator.FieldLevel) bool {
		return cardExpirationPattern.MatchString(fl.Field().String())
	})
}
