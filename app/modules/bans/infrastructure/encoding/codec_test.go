package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows1251Decode(t *testing.T) {
	codec := NewWindows1251Codec()

	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{name: "empty payload", raw: nil, want: ""},
		{name: "ascii passes through", raw: []byte("Griefing the shuttle"), want: "Griefing the shuttle"},
		{
			name: "cyrillic decodes",
			raw:  []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2},
			want: "Привет",
		},
		{
			name: "mixed script",
			raw:  append([]byte("ban: "), 0xEC, 0xE5, 0xF2, 0xE0, 0xE3, 0xE5, 0xE9, 0xEC),
			want: "ban: метагейм",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindows1251UnmappedByte(t *testing.T) {
	codec := NewWindows1251Codec()

	// 0x98 has no assignment in windows-1251; the decoder substitutes U+FFFD
	// instead of failing the row.
	got, err := codec.Decode([]byte{'x', 0x98, 'y'})
	require.NoError(t, err)
	assert.Equal(t, "x�y", got)
}
