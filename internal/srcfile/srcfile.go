// Package srcfile discovers and decodes the translation units cflow
// analyzes: glob-expanded file lists and BOM-aware text decoding, the
// way the teacher project's own source-loading layer
// (internal/interp/encoding.go in the wider cflow-go pack) decodes
// script files.
package srcfile

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Discover expands a list of glob patterns (doublestar syntax: `**`
// matches across directory boundaries) rooted at dir into a sorted,
// de-duplicated list of matching file paths.
func Discover(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	fsys := os.DirFS(dir)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("srcfile: pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ReadSource reads path and decodes it to UTF-8, detecting and
// stripping a UTF-8 or UTF-16 byte-order mark. C sources are normally
// ASCII, but headers generated or edited on Windows toolchains
// occasionally carry a BOM; tolerating it here means the lexer never
// has to.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("srcfile: %w", err)
	}
	return DecodeBOM(data)
}

// DecodeBOM detects and strips a leading byte-order mark, decoding
// UTF-16 input to UTF-8. Input with no recognized BOM is returned
// unchanged, on the assumption that it's already valid UTF-8 (which
// also covers plain ASCII).
func DecodeBOM(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	}
	return string(data), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("srcfile: decoding UTF-16: %w", err)
	}
	return string(bytes.TrimPrefix(decoded, []byte("\xef\xbb\xbf"))), nil
}
