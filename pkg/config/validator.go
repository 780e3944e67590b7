package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"bladeassist/pkg/assistant"
	"bladeassist/pkg/logger"
	"bladeassist/pkg/render"
)

// ValidationError and ValidationErrors are shared with the assistant
// package so callers can inspect either with the same types.
type (
	ValidationError  = assistant.ValidationError
	ValidationErrors = assistant.ValidationErrors
)

// Validator validates settings.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new settings validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the complete settings tree.
func (v *Validator) Validate(s *Settings) error {
	v.errors = make(ValidationErrors, 0)

	if err := v.validateAssistant(&s.Assistant); err != nil {
		return err
	}
	if err := v.validateTags(s); err != nil {
		return err
	}

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validateAssistant(spec *assistant.Spec) error {
	err := assistant.Validate(*spec)
	if err == nil {
		return nil
	}

	var fieldErrs assistant.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		v.addError("assistant."+fe.Field, fe.Message)
	}
	return nil
}

// validateTags checks the logger and export sections. The assistant section
// is skipped here; it has its own rules.
func (v *Validator) validateTags(s *Settings) error {
	err := settingsValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating settings: %w", err)
	}
	for _, fe := range fieldErrs {
		v.addError(settingsPath(fe.Namespace()), describeSetting(fe))
	}
	return nil
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateSettings is a convenience function to validate settings.
func ValidateSettings(s *Settings) error {
	return NewValidator().Validate(s)
}

var (
	settingsOnce     sync.Once
	settingsValidate *validator.Validate
)

func settingsValidator() *validator.Validate {
	settingsOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "loglevel", func(fl validator.FieldLevel) bool {
			_, err := logger.ParseLevel(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "exportformat", func(fl validator.FieldLevel) bool {
			_, err := render.ParseFormat(fl.Field().String())
			return err == nil
		})
		v.RegisterStructValidation(validateFileLogging, LoggerConfig{})
		settingsValidate = v
	})
	return settingsValidate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// validateFileLogging requires a rotation size whenever file logging is on.
func validateFileLogging(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(LoggerConfig)
	if strings.TrimSpace(cfg.OutputPath) != "" && cfg.MaxSize < 1 {
		sl.ReportError(cfg.MaxSize, "max_size", "MaxSize", "filesize", "")
	}
}

// settingsPath turns "Settings.logger.level" into "logger.level".
func settingsPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeSetting(fe validator.FieldError) string {
	switch fe.Tag() {
	case "loglevel":
		return "level must be one of: debug, info, warn, error"
	case "exportformat":
		return "format must be one of: " + formatNames()
	case "filesize":
		return "max_size must be at least 1 when output_path is set"
	case "gte":
		return fmt.Sprintf("%s must be non-negative", fe.Field())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func formatNames() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
