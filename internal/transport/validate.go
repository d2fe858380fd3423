package transport

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a JSON field name to a readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the messages sorted by field name.
func (e FieldErrors) Messages() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e[k])
	}
	return out
}

type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "upper", hasRune(unicode.IsUpper))
	mustRegister(v, "lower", hasRune(unicode.IsLower))
	mustRegister(v, "digit", hasRune(unicode.IsDigit))
	mustRegister(v, "special", hasRune(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
	}))

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func hasRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

// Validate implements echo.Validator. Failures are returned as FieldErrors.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

var messages = map[string]string{
	"CreateUser.fullName.required":       "Full Name is required.",
	"CreateUser.email.required":          "Email is required.",
	"CreateUser.email.email":             "Invalid email address.",
	"CreateUser.password.required":       "Password is required.",
	"CreateUser.password.min":            "Password must be at least 8 characters long.",
	"CreateUser.password.upper":          "Password must contain at least one uppercase letter.",
	"CreateUser.password.lower":          "Password must contain at least one lowercase letter.",
	"CreateUser.password.digit":          "Password must contain at least one number.",
	"CreateUser.password.special":        "Password must contain at least one special character.",
	"CreateUser.confirmPassword.eqfield": "Password do not match.",
	"LoginUser.email.required":           "Email is required.",
	"LoginUser.email.email":              "Invalid email address.",
	"LoginUser.password.required":        "Password is required.",
	"CreateProduct.name.required":        "Product name is required.",
	"CreateProduct.name.min":             "Product name must be between 1 and 100 characters.",
	"CreateProduct.name.max":             "Product name must be between 1 and 100 characters.",
	"CreateProduct.description.required": "Product description is required.",
	"CreateProduct.description.min":      "Product description must be between 1 and 500 characters.",
	"CreateProduct.description.max":      "Product description must be between 1 and 500 characters.",
	"CreateProduct.image.required":       "Product image URL is required.",
	"CreateProduct.price.gte":            "Product price must be greater than zero.",
	"CreateProduct.quantity.gte":         "Product quantity must be greater than or equal to zero.",
	"CreateProduct.categoryId.required":  "Category ID is required.",
	"UpdateProduct.id.required":          "Product ID is required.",
	"CreateCategory.name.required":       "Category name is required.",
	"CreateCategory.name.min":            "Category name must be between 1 and 100 characters.",
	"CreateCategory.name.max":            "Category name must be between 1 and 100 characters.",
	"UpdateCategory.id.required":         "Category ID is required.",
	"Checkout.paymentMethodId.required":  "Payment method is required.",
	"Checkout.carts.required":            "Cart is required.",
	"Carts.productId.required":           "Product ID is required.",
	"Carts.quantity.gte":                 "Quantity must be at least 1.",
	"CreateAchieve.productId.required":   "Product ID is required.",
	"CreateAchieve.quantity.gte":         "Quantity must be at least 1.",
	"CreateAchieve.userId.required":      "User ID is required.",
}

// fieldPath is the JSON path of the field, e.g. "carts[1].quantity". The root
// struct and embedded struct names are dropped.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	out := parts[:0]
	for _, p := range parts[1:] {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

// message picks the text for a failed rule. Embedded and nested structs are
// looked up by the innermost struct that declares the field.
func message(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) >= 2 {
		owner := strings.SplitN(parts[len(parts)-2], "[", 2)[0]
		key := owner + "." + fe.Field() + "." + fe.Tag()
		if m, ok := messages[key]; ok {
			return m
		}
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s has invalid length.", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
