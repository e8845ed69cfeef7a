package interop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Context is a structured payload shared over channels and intents. Fields
// beyond type, name and id are preserved in Extra.
type Context struct {
	Type  string            `json:"type"`
	Name  string            `json:"name,omitempty"`
	ID    map[string]string `json:"id,omitempty"`
	Extra map[string]any    `json:"-"`
}

// ParseContext decodes a context from JSON. The payload must be an object
// with a non-empty string "type". Numbers keep their literal form. A "name"
// that is not a string, or an "id" that is not an object of strings, stays
// in Extra untouched.
func ParseContext(data []byte) (Context, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Context{}, fmt.Errorf("%w: empty payload", ErrMalformedContext)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Context{}, fmt.Errorf("%w: %v", ErrMalformedContext, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Context{}, fmt.Errorf("%w: trailing data after object", ErrMalformedContext)
	}

	typ, ok := raw["type"].(string)
	if !ok || typ == "" {
		return Context{}, fmt.Errorf("%w: missing string field \"type\"", ErrMalformedContext)
	}
	delete(raw, "type")

	c := Context{Type: typ}
	if name, ok := raw["name"].(string); ok && name != "" {
		c.Name = name
		delete(raw, "name")
	}
	if ids, ok := stringMap(raw["id"]); ok && len(ids) > 0 {
		c.ID = ids
		delete(raw, "id")
	}

	if len(raw) > 0 {
		c.Extra = raw
	}

	return c, nil
}

// stringMap converts v to a map when it is a JSON object whose values are
// all strings.
func stringMap(v any) (map[string]string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(obj))
	for k, val := range obj {
		s, ok := val.(string)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

// MarshalJSON flattens Extra back into the object.
func (c Context) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["type"] = c.Type
	if c.Name != "" {
		out["name"] = c.Name
	}
	if len(c.ID) > 0 {
		out["id"] = c.ID
	}
	return json.Marshal(out)
}

// Summary is a one-line description used in notifications.
func (c Context) Summary() string {
	if c.Name != "" {
		return fmt.Sprintf("%s (%s)", c.Type, c.Name)
	}
	return c.Type
}
