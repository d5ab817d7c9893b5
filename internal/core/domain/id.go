package domain

import (
	"encoding/json"
	"fmt"
)

// ID is a server-assigned identifier. The backend serializes integer primary
// keys as JSON numbers and other keys as strings; both decode into ID, which
// compares and renders as plain text. The validation envelope is the only
// response shape the client depends on structurally, so identifiers stay
// tolerant of either representation.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// Coordinate is a latitude or longitude exactly as the server reports it.
// Numbers and strings both decode; the console never does arithmetic on it.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	*c = Coordinate(s)
	return nil
}

func (c Coordinate) String() string { return string(c) }

// flexString decodes a JSON string, number, or null into its text form.
func flexString(b []byte) (string, error) {
	if string(b) == "null" {
		return "", nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		err := json.Unmarshal(b, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
