package jsoncolor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/workbench/pkg/tuitest"
)

func TestColorize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "context",
			in:   `{"type":"fdc3.instrument","id":{"ticker":"AAPL"}}`,
			want: "{\n  \"type\": \"fdc3.instrument\",\n  \"id\": {\n    \"ticker\": \"AAPL\"\n  }\n}",
		},
		{
			name: "scalars",
			in:   `{"n":-4.5,"ok":true,"none":null,"list":[1,"a"]}`,
			want: "{\n  \"n\": -4.5,\n  \"ok\": true,\n  \"none\": null,\n  \"list\": [\n    1,\n    \"a\"\n  ]\n}",
		},
		{
			name: "escaped key",
			in:   `{"a\"b":"c: d"}`,
			want: "{\n  \"a\\\"b\": \"c: d\"\n}",
		},
		{
			name: "empty object",
			in:   `{}`,
			want: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tuitest.StripANSI(Colorize([]byte(tt.in))))
		})
	}
}

func TestColorize_invalid(t *testing.T) {
	assert.Equal(t, "not json", Colorize([]byte("not json")))
}
