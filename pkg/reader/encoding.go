package reader

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BOM prefixes.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode detects the encoding of a source export, strips any
// BOM, and returns UTF-8 bytes along with the detected encoding name.
// Survey exports arrive as UTF-8 (with or without BOM), UTF-16 from
// spreadsheet tools, or Latin-1 from older database dumps; anything
// that is not valid UTF-8 and carries no BOM falls back to Latin-1,
// which cannot fail.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[3:], "utf-8-bom", nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		decoded, err := decode(data, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 LE decode failed: %w", err)
		}
		return decoded, "utf-16le", nil
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		decoded, err := decode(data, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 BE decode failed: %w", err)
		}
		return decoded, "utf-16be", nil
	}

	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	decoded, err := decode(data, charmap.ISO8859_1.NewDecoder())
	if err != nil {
		return nil, "", fmt.Errorf("latin-1 decode failed: %w", err)
	}
	return decoded, "latin-1", nil
}

func decode(data []byte, decoder transform.Transformer) ([]byte, error) {
	decoded, _, err := transform.Bytes(decoder, data)
	return decoded, err
}
