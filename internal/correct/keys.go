package correct

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// KeyReader delivers single keystrokes.
type KeyReader interface {
	ReadKey() (rune, error)
}

const keyInterrupt = 0x03

// NewKeyReader reads from a terminal in raw mode, one key at a time, and
// from anything else one rune at a time with line breaks ignored.
func NewKeyReader(in io.Reader) KeyReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &terminalKeys{f: f}
	}
	return &streamKeys{r: bufio.NewReader(in)}
}

type terminalKeys struct {
	f *os.File
}

func (k *terminalKeys) ReadKey() (rune, error) {
	fd := int(k.f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(fd, old)

	var buf [utf8.UTFMax]byte
	n, err := k.f.Read(buf[:1])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	need := 1
	switch b := buf[0]; {
	case b >= 0xf0:
		need = 4
	case b >= 0xe0:
		need = 3
	case b >= 0xc0:
		need = 2
	}
	for n < need {
		m, err := k.f.Read(buf[n:need])
		if err != nil {
			break
		}
		n += m
	}
	r, _ := utf8.DecodeRune(buf[:n])
	return r, nil
}

type streamKeys struct {
	r *bufio.Reader
}

func (k *streamKeys) ReadKey() (rune, error) {
	for {
		r, _, err := k.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == '\n' || r == '\r' {
			continue
		}
		return r, nil
	}
}
