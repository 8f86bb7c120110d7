package module

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Length-prefixed primitive encoders/decoders for snapshot's
// MarshalBinary/UnmarshalBinary, carried over directly from the teacher's
// internal/tunascript/binary.go (encBinaryString/encBinaryInt and their
// decode counterparts).

func encBinaryInt(i int) []byte {
	enc := make([]byte, 0, 8)
	enc = binary.AppendVarint(enc, int64(i))
	return enc
}

func decBinaryInt(data []byte) (int, int, error) {
	v, n := binary.Varint(data)
	if n <= 0 {
		return 0, 0, fmt.Errorf("decode int: unexpected end of data")
	}
	return int(v), n, nil
}

func encBinaryString(s string) []byte {
	body := []byte(s)
	prefix := encBinaryInt(utf8.RuneCountInString(s))
	enc := make([]byte, 0, len(prefix)+len(body))
	enc = append(enc, prefix...)
	enc = append(enc, body...)
	return enc
}

func decBinaryString(data []byte) (string, int, error) {
	runeCount, prefixLen, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decode string length: %w", err)
	}
	data = data[prefixLen:]

	consumed := 0
	for i := 0; i < runeCount; i++ {
		if consumed >= len(data) {
			return "", 0, fmt.Errorf("decode string: unexpected end of data")
		}
		_, size := utf8.DecodeRune(data[consumed:])
		consumed += size
	}

	return string(data[:consumed]), prefixLen + consumed, nil
}
