package config

// Configuration keys within the "validation" section of the project file.
const (
	KeyStrict                 = "strict"
	KeyLazy                   = "lazy"
	KeyRowValidationMaxErrors = "row_validation_max_errors"
	KeyChecksMaxSamples       = "checks_max_samples"
	KeyAllowEmpty             = "allow_empty"
)

// Default values used when neither the project file nor a call-site
// override supplies a setting.
const (
	DefaultStrict                 = false
	DefaultLazy                   = false
	DefaultRowValidationMaxErrors = 5
	DefaultChecksMaxSamples       = 5
	DefaultAllowEmpty             = true
)

// DefaultFileName is the project configuration file looked up in the
// working directory.
const DefaultFileName = "ganymede.yaml"

// Config holds the resolved project-level validation settings. Instances
// are never mutated after loading; a fresh Config is produced per load.
type Config struct {
	// Strict rejects undeclared table columns when a spec is supplied.
	Strict bool

	// Lazy collects all validation failures instead of stopping at the
	// first failing validator.
	Lazy bool

	// RowValidationMaxErrors caps per-validator row sampling and the total
	// record count in lazy mode. Always >= 1.
	RowValidationMaxErrors int

	// ChecksMaxSamples caps how many values per column the checks
	// validator inspects. Always >= 1.
	ChecksMaxSamples int

	// AllowEmpty permits zero-row tables.
	AllowEmpty bool
}

// Default returns a Config holding the built-in defaults.
func Default() *Config {
	return &Config{
		Strict:                 DefaultStrict,
		Lazy:                   DefaultLazy,
		RowValidationMaxErrors: DefaultRowValidationMaxErrors,
		ChecksMaxSamples:       DefaultChecksMaxSamples,
		AllowEmpty:             DefaultAllowEmpty,
	}
}
