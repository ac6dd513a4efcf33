package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldError reports one invalid configuration value.
type FieldError struct {
	// Key is the configuration key, e.g. "validation.checks_max_samples".
	Key string

	// Message describes what is wrong with the value.
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// ValidationError collects every invalid value found in the project file.
type ValidationError struct {
	Errors []FieldError
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Load reads the project configuration from path and applies environment
// overrides. A missing or syntactically unparsable file yields the
// defaults; present keys with wrong types or out-of-range values yield a
// ValidationError.
func Load(path string) (*Config, error) {
	cfg := Default()

	section, ok := readSection(path)
	if ok {
		if err := applySection(cfg, section); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readSection extracts the "validation" mapping from the project file.
// The second return is false when the file is absent, unreadable, not
// valid YAML, or carries no validation section.
func readSection(path string) (map[string]any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false
	}

	section, ok := doc["validation"].(map[string]any)
	return section, ok
}

func applySection(cfg *Config, section map[string]any) error {
	var errs []FieldError

	boolKey := func(key string, dst *bool) {
		raw, present := section[key]
		if !present {
			return
		}
		b, ok := raw.(bool)
		if !ok {
			errs = append(errs, FieldError{
				Key:     "validation." + key,
				Message: fmt.Sprintf("must be a boolean, got %T (%v)", raw, raw),
			})
			return
		}
		*dst = b
	}

	intKey := func(key string, dst *int) {
		raw, present := section[key]
		if !present {
			return
		}
		n, ok := raw.(int)
		if !ok {
			errs = append(errs, FieldError{
				Key:     "validation." + key,
				Message: fmt.Sprintf("must be an integer, got %T (%v)", raw, raw),
			})
			return
		}
		if n < 1 {
			errs = append(errs, FieldError{
				Key:     "validation." + key,
				Message: fmt.Sprintf("must be >= 1, got %d", n),
			})
			return
		}
		*dst = n
	}

	boolKey(KeyStrict, &cfg.Strict)
	boolKey(KeyLazy, &cfg.Lazy)
	boolKey(KeyAllowEmpty, &cfg.AllowEmpty)
	intKey(KeyRowValidationMaxErrors, &cfg.RowValidationMaxErrors)
	intKey(KeyChecksMaxSamples, &cfg.ChecksMaxSamples)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// applyEnvOverrides applies GANYMEDE_* environment variables on top of the
// file values. Unparsable values are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("GANYMEDE_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Strict = b
		}
	}
	if val := os.Getenv("GANYMEDE_LAZY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Lazy = b
		}
	}
	if val := os.Getenv("GANYMEDE_ALLOW_EMPTY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.AllowEmpty = b
		}
	}
	if val := os.Getenv("GANYMEDE_ROW_VALIDATION_MAX_ERRORS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.RowValidationMaxErrors = n
		}
	}
	if val := os.Getenv("GANYMEDE_CHECKS_MAX_SAMPLES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.ChecksMaxSamples = n
		}
	}
}

func validate(cfg *Config) error {
	var errs []FieldError
	if cfg.RowValidationMaxErrors < 1 {
		errs = append(errs, FieldError{
			Key:     "validation." + KeyRowValidationMaxErrors,
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.RowValidationMaxErrors),
		})
	}
	if cfg.ChecksMaxSamples < 1 {
		errs = append(errs, FieldError{
			Key:     "validation." + KeyChecksMaxSamples,
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.ChecksMaxSamples),
		})
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
