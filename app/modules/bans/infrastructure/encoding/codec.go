// Package encoding decodes the legacy byte payloads stored in the ban table.
// The game server writes ban reasons as raw windows-1251 bytes; everything
// downstream of the repository works with UTF-8.
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ReasonCodec converts stored reason bytes to text.
type ReasonCodec interface {
	Decode(raw []byte) (string, error)
}

// Windows1251Codec decodes windows-1251 bytes. Bytes without a mapping come
// out as U+FFFD rather than failing the row.
type Windows1251Codec struct{}

func NewWindows1251Codec() Windows1251Codec {
	return Windows1251Codec{}
}

func (Windows1251Codec) Decode(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode windows-1251 payload: %w", err)
	}
	return string(decoded), nil
}
