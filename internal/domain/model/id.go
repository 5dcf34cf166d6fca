package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is an opaque identifier of a Resource API entity. The API mixes numeric and
// string keys, so both JSON forms are accepted and numeric ids are written back as numbers.
type ID string

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
