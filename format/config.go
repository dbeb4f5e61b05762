package format

const defaultLocale = "en"

// Config selects the locale used to render arguments.
type Config struct {
	Locale string `json:"locale,omitempty"`
}

// DefaultConfig returns the English configuration.
func DefaultConfig() Config {
	return Config{Locale: defaultLocale}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Locale != "" {
		c.Locale = source.Locale
	}
}

// FromConfig builds a Formatter; a nil cfg uses DefaultConfig.
func FromConfig(cfg *Config) *Formatter {
	resolved := DefaultConfig()
	if cfg != nil {
		resolved.Merge(cfg)
	}
	return New(resolved.Locale)
}
