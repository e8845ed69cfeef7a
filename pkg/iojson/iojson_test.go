package iojson

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"state": "available"}))
	assert.JSONEq(t, `{"state":"available"}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_marshal_error(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))
	assert.Empty(t, out.String())

	var e Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &e))
	assert.Contains(t, e.Data, "json_error")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("bad input", map[string]any{"field": "timeout"})
	assert.JSONEq(t, `{"message":"bad input","data":{"field":"timeout"}}`, got)
}
