package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		validate.RegisterValidation("multiple_of", func(fl validator.FieldLevel) bool {
			step, err := strconv.ParseInt(fl.Param(), 10, 64)
			if err != nil || step <= 0 {
				return false
			}
			return fl.Field().Int()%step == 0
		})
	})
}

func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %s", errorvalues.ErrValidation, strings.Join(msgs, "; "))
	}
	return errors.New("validation unexpected error: " + err.Error())
}
