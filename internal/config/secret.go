package config

// SecretValue replaces secrets when a config is serialised.
const SecretValue = "<secret>"

// SecretString holds a value that must not appear in logs or dumps.
type SecretString string

// String hides the value from fmt and zap.Stringer fields.
func (s SecretString) String() string {
	if s == "" {
		return ""
	}
	return SecretValue
}

// Reveal returns the actual value.
func (s SecretString) Reveal() string {
	return string(s)
}

// MarshalJSON marshals the placeholder instead of the value.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(`"` + SecretValue + `"`), nil
}

// MarshalYAML marshals the placeholder instead of the value.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretValue, nil
}
