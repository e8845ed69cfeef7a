// Package iojson writes indented JSON reports for commands whose output may
// be consumed by scripts.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape written to the error stream when a report cannot
// be encoded.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// MarshalError encodes an Error. If that fails too, a hand-built payload
// carrying the encoding error is returned so callers always get valid JSON.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

func fallbackError(msg string, jsonErr error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteWith writes obj to w as indented JSON. Encoding failures are reported
// to ew as an Error and do not fail the call.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, MarshalError("failed to encode report", map[string]any{"json_error": err.Error()}))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
