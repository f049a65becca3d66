// Package validation owns the shared validator instance and the custom tags
// used by the contact form and the configuration loader.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	personNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	logLevels         = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {}, "disabled": {}}
)

// Instance returns the shared validator. Field errors are reported with YAML
// tag names and folio's custom tags are registered:
//
//	person_name  letters and whitespace only
//	log_level    a zerolog level name (case-insensitive), empty allowed
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
			return personNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			level := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			if level == "" {
				return true
			}
			_, ok := logLevels[level]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// FirstFailedTag validates value against tag and returns the tag that failed,
// or "" when the value passes.
func FirstFailedTag(value interface{}, tag string) (string, error) {
	err := Instance().Var(value, tag)
	if err == nil {
		return "", nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		return ves[0].Tag(), nil
	}
	return "", err
}
