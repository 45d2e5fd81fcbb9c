package netplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "null", in: nil, want: nil},
		{name: "string", in: "hello", want: "hello"},
		{name: "number", in: 649, want: 649.0},
		{name: "bool", in: true, want: true},
		{
			name: "select message",
			in:   map[string]any{"type": "select", "index": 25},
			want: map[string]any{"type": "select", "index": 25.0},
		},
		{
			name: "nested",
			in:   map[string]any{"list": []any{1, "two", map[string]any{"three": 3}}},
			want: map[string]any{"list": []any{1.0, "two", map[string]any{"three": 3.0}}},
		},
		{
			name: "struct uses json tags",
			in: struct {
				Type  string `json:"type"`
				Index int    `json:"index"`
			}{Type: "select", Index: 7},
			want: map[string]any{"type": "select", "index": 7.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := encode(kindData, tt.in)
			require.NoError(t, err)

			kind, got, err := decode(b)
			require.NoError(t, err)
			assert.Equal(t, kindData, kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodec_Unserializable(t *testing.T) {
	_, err := encode(kindData, make(chan int))
	assert.Error(t, err)
}

func TestCodec_Malformed(t *testing.T) {
	_, _, err := decode([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, errMalformedFrame)

	_, _, err = decode(nil)
	assert.ErrorIs(t, err, errMalformedFrame, "an empty frame has no kind")
}
