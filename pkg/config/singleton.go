package config

import "sync"

var (
	// cached holds the process-wide configuration instance.
	cached *Config

	// cachedErr remembers a load failure so repeated accessors do not
	// retry a broken file on every call.
	cachedErr error

	// loaded marks whether a load has happened since the last invalidation.
	loaded bool

	// filePath is the project file consulted by Get.
	filePath = DefaultFileName

	// mu protects all of the above.
	mu sync.RWMutex
)

// Get returns the cached project configuration, loading it on first use.
// A load failure (malformed values in a present file) is returned as the
// error; callers that only need defaults can ignore it and use Default.
func Get() (*Config, error) {
	mu.RLock()
	if loaded {
		cfg, err := cached, cachedErr
		mu.RUnlock()
		return cfg, err
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		cached, cachedErr = Load(filePath)
		loaded = true
	}
	return cached, cachedErr
}

// Set replaces the cached configuration. Primarily for tests; production
// code should rely on the project file and Invalidate.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	cached = cfg
	cachedErr = nil
	loaded = true
}

// Invalidate clears the cache so the next accessor rereads the project
// file. Tests call this between runs instead of restarting the process.
func Invalidate() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
	cachedErr = nil
	loaded = false
}

// SetFilePath changes the project file consulted by Get and invalidates
// the cache. Primarily for tests and the CLI's --config flag.
func SetFilePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	filePath = path
	cached = nil
	cachedErr = nil
	loaded = false
}

// FilePath returns the project file currently consulted by Get.
func FilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return filePath
}

// effective returns the cached config, falling back to defaults when the
// file is broken. Accessors below never fail; a broken file surfaces from
// Get or Load where the caller can report it.
func effective() *Config {
	cfg, err := Get()
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// Strict resolves the strict-mode setting, the explicit override taking
// precedence over the project configuration.
func Strict(override *bool) bool {
	if override != nil {
		return *override
	}
	return effective().Strict
}

// Lazy resolves the lazy-mode setting.
func Lazy(override *bool) bool {
	if override != nil {
		return *override
	}
	return effective().Lazy
}

// AllowEmpty resolves the allow-empty setting.
func AllowEmpty(override *bool) bool {
	if override != nil {
		return *override
	}
	return effective().AllowEmpty
}

// RowValidationMaxErrors resolves the row validation error cap.
func RowValidationMaxErrors() int {
	return effective().RowValidationMaxErrors
}

// ChecksMaxSamples resolves the checks sample size, the explicit override
// taking precedence over the project configuration.
func ChecksMaxSamples(override *int) int {
	if override != nil {
		return *override
	}
	return effective().ChecksMaxSamples
}
