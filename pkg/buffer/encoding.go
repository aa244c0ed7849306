package buffer

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a text codec a Buffer's bytes were decoded from, so Save
// can transcode back on the way out. "UTF-8" covers both valid UTF-8 and
// the no-BOM, ASCII-compatible common case.
type Encoding string

const (
	EncodingUTF8       Encoding = "UTF-8"
	EncodingUTF16LE    Encoding = "UTF-16LE"
	EncodingUTF16BE    Encoding = "UTF-16BE"
	EncodingWindows1252 Encoding = "windows-1252"
)

// DetectEncoding sniffs a BOM, then falls back to UTF-8 validity, then
// windows-1252 as the last resort for arbitrary 8-bit text. This mirrors
// the common editor heuristic (BOM > valid-UTF-8 > legacy single-byte)
// rather than a full charset-detection library, since none appears
// anywhere in the retrieval pack.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingWindows1252
	}
}

func codecFor(enc Encoding) encoding.Encoding {
	switch enc {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case EncodingWindows1252:
		return charmap.Windows1252
	default:
		return nil
	}
}

// DecodeText converts raw file bytes to a UTF-8 string per the detected (or
// explicitly chosen) encoding. UTF-8 input is returned as-is.
func DecodeText(data []byte, enc Encoding) (string, error) {
	codec := codecFor(enc)
	if codec == nil {
		return string(data), nil
	}
	out, _, err := transform.Bytes(codec.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeText converts UTF-8 content back to the buffer's original encoding
// for Save. UTF-8 content is returned as-is.
func EncodeText(text string, enc Encoding) ([]byte, error) {
	codec := codecFor(enc)
	if codec == nil {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(codec.NewEncoder(), []byte(text))
	if err != nil {
		return nil, err
	}
	return out, nil
}
