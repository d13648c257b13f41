package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
)

// FlexNumber is a float64 that tolerates the upstream reputation panels
// encoding numeric fields as JSON numbers, numeric strings, or null.
// It always marshals back as a plain JSON number.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*n = 0
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eris.Errorf("model: %q is not a number", s)
	}
	*n = FlexNumber(f)
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}
