package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// 入力の上限（文字数）
const (
	MaxNameLength     = 50
	MaxPasswordLength = 20
)

// ValidationError は最初に違反したフィールドとその理由を表します。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Registration は登録フォームの入力です。フィールドの宣言順が検証順になります。
type Registration struct {
	Name     string `form:"name" validate:"required,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,max=20"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRegistration は登録入力を検証します。
func ValidateRegistration(name, email, password string) (Registration, error) {
	reg := Registration{Name: name, Email: email, Password: password}
	if err := validatorInstance().Struct(reg); err != nil {
		return Registration{}, toValidationError(err, "")
	}
	return reg, nil
}

// ValidateEmailOnly はログイン時のメールアドレスの形式だけを検証します。
func ValidateEmailOnly(email string) (string, error) {
	if err := validatorInstance().Var(email, "required,email"); err != nil {
		return "", toValidationError(err, "email")
	}
	return email, nil
}

func toValidationError(err error, field string) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	first := errs[0]
	if field == "" {
		field = fieldName(first.Field())
	}
	return &ValidationError{Field: field, Reason: reason(first)}
}

func fieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return structField
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fe.Tag()
	}
}
