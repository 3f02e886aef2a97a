package config

import (
	"encoding/json"
	"fmt"
)

func NewSecretString(value string) SecretString {
	return SecretString{value}
}

// SecretString holds a secret that prints masked in logs and fmt output.
type SecretString struct {
	value string
}

func (s SecretString) String() string {
	if s.value == "" {
		return ""
	}
	return "*****"
}

func (s SecretString) GoString() string {
	return s.String()
}

func (s SecretString) Value() string {
	return s.value
}

func (s SecretString) IsZero() bool {
	return s.value == ""
}

// MarshalJSON masks the secret; it is never serialised in clear text.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SecretString) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.value); err != nil {
		return fmt.Errorf("unable to unmarshal secret: %w", err)
	}
	return nil
}

func (s *SecretString) UnmarshalYAML(unmarshal func(any) error) error {
	if err := unmarshal(&s.value); err != nil {
		return fmt.Errorf("unable to unmarshal secret: %w", err)
	}
	return nil
}
