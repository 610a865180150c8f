package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	EncodingUTF8 = "utf-8"
	EncodingAuto = "auto"
)

type Decoded struct {
	Text     string
	Encoding string
}

type Position struct {
	Line   int
	Column int
}

func DetectBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	ctl := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b == 9 || b == 10 || b == 13 {
			continue
		}
		if b < 32 || b == 127 {
			ctl++
		}
	}
	ratio := float64(ctl) / float64(len(sample))
	return ratio > 0.30
}

// NormalizeEncoding folds the utf8 aliases onto EncodingUTF8 and lower-cases the rest.
func NormalizeEncoding(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	}
	return n
}

func ValidateEncoding(name string) error {
	n := NormalizeEncoding(name)
	if n == EncodingUTF8 || n == EncodingAuto {
		return nil
	}
	if _, err := htmlindex.Get(n); err != nil {
		return fmt.Errorf("unsupported encoding: %s", name)
	}
	return nil
}

// Decode converts data to UTF-8 text using the named encoding. "auto" tries
// utf-8, gb18030 and gbk in that order.
func Decode(data []byte, name string) (Decoded, error) {
	n := NormalizeEncoding(name)
	switch n {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return Decoded{}, fmt.Errorf("couldn't decode with '%s' codec", EncodingUTF8)
		}
		return Decoded{Text: string(data), Encoding: EncodingUTF8}, nil
	case EncodingAuto:
		return detectDecode(data)
	}
	enc, err := htmlindex.Get(n)
	if err != nil {
		return Decoded{}, fmt.Errorf("unsupported encoding: %s", name)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(out) {
		return Decoded{}, fmt.Errorf("couldn't decode with '%s' codec", n)
	}
	return Decoded{Text: string(out), Encoding: n}, nil
}

func detectDecode(data []byte) (Decoded, error) {
	if utf8.Valid(data) {
		return Decoded{Text: string(data), Encoding: EncodingUTF8}, nil
	}
	if out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return Decoded{Text: string(out), Encoding: "gb18030"}, nil
	}
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return Decoded{Text: string(out), Encoding: "gbk"}, nil
	}
	return Decoded{}, fmt.Errorf("couldn't detect the text encoding (tried utf-8/gb18030/gbk)")
}

// Encode converts UTF-8 text back into the named encoding for writing.
func Encode(text string, name string) ([]byte, error) {
	n := NormalizeEncoding(name)
	if n == EncodingUTF8 {
		return []byte(text), nil
	}
	var enc encoding.Encoding
	switch n {
	case "gb18030":
		enc = simplifiedchinese.GB18030
	case "gbk":
		enc = simplifiedchinese.GBK
	default:
		e, err := htmlindex.Get(n)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding: %s", name)
		}
		enc = e
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("couldn't encode with '%s' codec: %w", n, err)
	}
	return out, nil
}

func HashSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func RuneColumnAtByteOffset(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 1
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCountInString(line[:byteOffset]) + 1
}

// LineIndex maps byte offsets of a text onto 1-based line and rune columns.
// It is built once per file.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && i+1 < len(text) {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

func (li *LineIndex) Lines() int {
	if li.text == "" {
		return 0
	}
	return len(li.starts)
}

func (li *LineIndex) lineOf(off int) int {
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i
}

func (li *LineIndex) Position(off int) Position {
	if li.text == "" {
		return Position{Line: 0, Column: 0}
	}
	i := li.lineOf(off)
	return Position{Line: i + 1, Column: RuneColumnAtByteOffset(li.text[li.starts[i]:], off-li.starts[i])}
}

// Line returns the text of the 1-based line n without its terminator.
func (li *LineIndex) Line(n int) string {
	if n < 1 || n > li.Lines() {
		return ""
	}
	start := li.starts[n-1]
	end := len(li.text)
	if n < len(li.starts) {
		end = li.starts[n]
	}
	return strings.TrimRight(li.text[start:end], "\r\n")
}

// LineStart returns the byte offset at which the line holding off begins.
func (li *LineIndex) LineStart(off int) int {
	return li.starts[li.lineOf(off)]
}
