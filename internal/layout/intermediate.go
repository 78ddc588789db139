package layout

import (
	"encoding/json"
	"fmt"
)

// MalformedIntermediateError is returned when a serialized row set cannot be
// decoded, neither directly nor after unwrapping one layer of string encoding.
type MalformedIntermediateError struct {
	Err error
}

func (e *MalformedIntermediateError) Error() string {
	return fmt.Sprintf("malformed intermediate rows: %v", e.Err)
}

func (e *MalformedIntermediateError) Unwrap() error {
	return e.Err
}

// EncodeRows renders rows as a JSON array of two-element string arrays.
func EncodeRows(rows []Row) ([]byte, error) {
	return json.Marshal(ToCells(rows))
}

// DecodeRows reads a serialized row set. Payloads that were encoded twice
// (a JSON string whose content is the real array) are unwrapped once.
// Rows keep however many cells they were written with.
func DecodeRows(data []byte) ([][]string, error) {
	var cells [][]string
	err := json.Unmarshal(data, &cells)
	if err == nil {
		return cells, nil
	}

	var inner string
	if json.Unmarshal(data, &inner) != nil {
		return nil, &MalformedIntermediateError{Err: err}
	}
	if err := json.Unmarshal([]byte(inner), &cells); err != nil {
		return nil, &MalformedIntermediateError{Err: err}
	}
	return cells, nil
}
