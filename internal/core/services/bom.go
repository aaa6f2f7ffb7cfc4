package services

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Byte order marks that show up at the start of roster CSV files.
// Excel in particular likes to export CSVs with a UTF-8 or UTF-16 BOM.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// DecodeBOM wraps r so that its content is read as UTF-8 regardless of any
// Unicode byte order mark at the start. Input without a BOM passes through
// untouched. The UTF-32 marks are checked before UTF-16 because the
// little-endian forms share a prefix.
func DecodeBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(head, bomUTF32BE):
		enc := utf32.UTF32(utf32.BigEndian, utf32.UseBOM)
		return transform.NewReader(br, enc.NewDecoder())
	case bytes.HasPrefix(head, bomUTF32LE):
		enc := utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
		return transform.NewReader(br, enc.NewDecoder())
	case bytes.HasPrefix(head, bomUTF8):
		br.Discard(len(bomUTF8))
		return br
	case bytes.HasPrefix(head, bomUTF16BE):
		enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
		return transform.NewReader(br, enc.NewDecoder())
	case bytes.HasPrefix(head, bomUTF16LE):
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		return transform.NewReader(br, enc.NewDecoder())
	default:
		return br
	}
}
