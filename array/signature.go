package array

import (
	"fmt"
	"strings"
	"unicode"
)

// Signature is a generalized ufunc signature. Each operand lists the names
// of its trailing core dimensions; an empty list is an elementwise operand.
type Signature struct {
	Inputs  [][]string
	Outputs [][]string
}

// ParseSignature parses signatures of the form "(i,d)->()" or
// "(),(i)->()". Whitespace is ignored.
func ParseSignature(s string) (*Signature, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	in, out, ok := strings.Cut(compact, "->")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no \"->\"", ErrInvalidSignature, s)
	}
	inputs, err := parseOperands(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSignature, s, err)
	}
	outputs, err := parseOperands(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSignature, s, err)
	}
	return &Signature{Inputs: inputs, Outputs: outputs}, nil
}

// MustParseSignature is like ParseSignature but panics on error.
func MustParseSignature(s string) *Signature {
	sig, err := ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return sig
}

func parseOperands(s string) ([][]string, error) {
	var ops [][]string
	for len(s) > 0 {
		if s[0] != '(' {
			return nil, fmt.Errorf("expected '(' at %q", s)
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated operand %q", s)
		}
		body := s[1:end]
		dims := []string{}
		if body != "" {
			for _, name := range strings.Split(body, ",") {
				if !isIdent(name) {
					return nil, fmt.Errorf("bad dimension name %q", name)
				}
				dims = append(dims, name)
			}
		}
		ops = append(ops, dims)
		s = s[end+1:]
		if len(s) > 0 {
			if s[0] != ',' || len(s) == 1 {
				return nil, fmt.Errorf("expected ',' between operands at %q", s)
			}
			s = s[1:]
		}
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("no operands")
	}
	return ops, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// String renders the signature in canonical form, e.g. "(i,d)->()".
func (s *Signature) String() string {
	var b strings.Builder
	writeOperands(&b, s.Inputs)
	b.WriteString("->")
	writeOperands(&b, s.Outputs)
	return b.String()
}

func writeOperands(b *strings.Builder, ops [][]string) {
	for i, dims := range ops {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(dims, ","))
		b.WriteByte(')')
	}
}
