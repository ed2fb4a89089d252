package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Label is a display value that the input may encode either as a JSON
// string or as a JSON number. It is kept exactly as written.
type Label string

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// UnmarshalJSON accepts a string or a number. Numbers keep their literal
// spelling, so 1200 stays "1200" and 12.5 stays "12.5".
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("label must be a string or a number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

// MarshalJSON always writes the label as a JSON string.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(l))
}
