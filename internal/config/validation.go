package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rajshekhar/folio/internal/validation"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// Validate checks cfg against its struct rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return folioerrors.NewValidationError("config", "configuration is nil", nil)
	}
	return convertValidationError(validation.Instance().Struct(cfg))
}

// convertValidationError reports the first failing field using its YAML path.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return folioerrors.NewValidationError(field, msg, err)
	}

	return folioerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.chat.max_tokens" into "chat.max_tokens". The
// shared validator reports YAML tag names, see validation.Instance.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
