package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"learnhub/backend/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("youtube", func(fl validator.FieldLevel) bool {
		_, ok := ExtractYouTubeID(fl.Field().String())
		return ok
	})
	return v
}

// ValidateStruct runs the struct's validate tags and reports failures as a
// validation error keyed by json field name.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	var first string
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		if first == "" {
			first = msg
		}
	}
	return apperr.ValidationFields(first, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "youtube":
		return fmt.Sprintf("%s is not a recognised YouTube URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
