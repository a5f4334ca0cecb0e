// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the API error code for every validation failure.
const ErrorCode = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// Error returns the human-readable message.
func (e *FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual failures.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// Error joins all messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].Message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures into the response error shape.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    ErrorCode,
			Message: e.Message,
			Details: map[string]interface{}{"field": e.Field, "tag": e.Tag},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.Field,
			"tag":     e.Tag,
			"message": e.Message,
		}
	}
	return &APIError{
		Code:    ErrorCode,
		Message: ve.Error(),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		// Registration only fails on an empty tag or nil func.
		_ = validate.RegisterValidation("notblank", notBlank)
	})
	return validate
}

// jsonFieldName reports fields by their json name, falling back to the Go name.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateStruct validates s and returns nil when every rule passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []FieldError{{Field: "request", Tag: "invalid", Message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var messages = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
	"uuid":     "%s must be a valid UUID",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := messages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
