package utils

import "encoding/json"

// Secret hides its value from logs and formatted output.
type Secret string

func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

func (s Secret) IsZero() bool {
	return s == ""
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (Secret) String() string {
	return "<secret>"
}

func (Secret) GoString() string {
	return "<secret>"
}
