package utils

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Decimals are validated through their string form.
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	validate.RegisterValidation("positive_decimal", validatePositiveDecimal)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func decimalValue(field reflect.Value) interface{} {
	if value, ok := field.Interface().(decimal.Decimal); ok {
		return value.String()
	}
	return nil
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive()
}
