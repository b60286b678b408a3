// Package textio decodes text input into UTF-8.
package textio

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by Lookup for unsupported encoding names.
var ErrUnknownEncoding = errors.New("unknown encoding")

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
}

// Lookup returns the encoding registered under name. An empty name or "auto"
// returns nil, which means UTF-8 with BOM detection.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "auto" {
		return nil, nil
	}
	enc, ok := encodings[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownEncoding, name, strings.Join(Names(), ", "))
	}
	return enc, nil
}

// Names lists the supported encoding names.
func Names() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewReader wraps r so it yields UTF-8. A UTF-8 or UTF-16 byte order mark
// always wins and is stripped; otherwise enc decodes the input, or it is
// taken as UTF-8 when enc is nil. Invalid UTF-8 becomes U+FFFD.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}

// ReadAll decodes all of r into a string.
func ReadAll(r io.Reader, enc encoding.Encoding) (string, error) {
	data, err := io.ReadAll(NewReader(r, enc))
	if err != nil {
		return "", fmt.Errorf("failed to decode input: %w", err)
	}
	return string(data), nil
}
