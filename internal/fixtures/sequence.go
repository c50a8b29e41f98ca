package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a fixture file does not follow the fixture grammar.
var ErrMalformed = errors.New("malformed fixture")

// Sequence is the rendered values of one kind.
type Sequence struct {
	Kind   Kind
	Tokens []string
}

// WriteTo writes the bracketed, comma separated form of s to w.
func (s Sequence) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(str string) error {
		n, err := io.WriteString(w, str)
		total += int64(n)
		return err
	}

	if err := write("["); err != nil {
		return total, err
	}
	for i, tok := range s.Tokens {
		if i > 0 && !s.Kind.trailingComma() {
			if err := write(","); err != nil {
				return total, err
			}
		}
		if err := write(tok); err != nil {
			return total, err
		}
		if s.Kind.trailingComma() {
			if err := write(","); err != nil {
				return total, err
			}
		}
	}
	return total, write("]")
}

// Bytes returns the file contents for s.
func (s Sequence) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}

// Parse reads the contents of a fixture file of kind k.
func Parse(k Kind, data []byte) (Sequence, error) {
	text := string(data)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") || len(text) < 2 {
		return Sequence{}, fmt.Errorf("%w: %s: not enclosed in brackets", ErrMalformed, k)
	}
	body := text[1 : len(text)-1]

	seq := Sequence{Kind: k, Tokens: []string{}}
	if body == "" {
		return seq, nil
	}
	if k.trailingComma() {
		if !strings.HasSuffix(body, ",") {
			return Sequence{}, fmt.Errorf("%w: %s: missing trailing comma", ErrMalformed, k)
		}
		body = strings.TrimSuffix(body, ",")
	} else if strings.HasSuffix(body, ",") {
		return Sequence{}, fmt.Errorf("%w: %s: unexpected trailing comma", ErrMalformed, k)
	}

	seq.Tokens = strings.Split(body, ",")
	for i, tok := range seq.Tokens {
		if err := checkToken(k, tok); err != nil {
			return Sequence{}, fmt.Errorf("%w: %s: token %d %q: %v", ErrMalformed, k, i, tok, err)
		}
	}
	return seq, nil
}

func checkToken(k Kind, tok string) error {
	var err error
	switch k {
	case Integers:
		_, err = strconv.ParseInt(tok, 10, 32)
	case Longs:
		_, err = strconv.ParseInt(tok, 10, 64)
	case Bytes:
		_, err = strconv.ParseInt(tok, 10, 8)
	case BoundedIntegers:
		var v int64
		v, err = strconv.ParseInt(tok, 10, 32)
		if err == nil && v < 0 {
			err = errors.New("negative bounded integer")
		}
	case Floats:
		_, err = strconv.ParseFloat(tok, 32)
	case Doubles, Gaussians:
		_, err = strconv.ParseFloat(tok, 64)
	case Booleans:
		if tok != "true" && tok != "false" {
			err = errors.New("want true or false")
		}
	default:
		err = fmt.Errorf("unknown kind %q", k)
	}
	return err
}
