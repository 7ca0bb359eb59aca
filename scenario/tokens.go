package scenario

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/example/jsclass/runtime"
)

type token struct {
	text   string
	quoted bool
}

// tokenize splits a command line on whitespace. Double-quoted strings use Go
// escape rules and may contain spaces; # outside a string starts a comment.
func tokenize(line string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			return toks, nil
		case c == '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				return nil, runtime.NewSyntaxError("bad_literal", runtime.NewString(line[i:]))
			}
			s, err := strconv.Unquote(line[i : j+1])
			if err != nil {
				return nil, runtime.NewSyntaxError("bad_literal", runtime.NewString(line[i:j+1]))
			}
			toks = append(toks, token{text: s, quoted: true})
			i = j + 1
		default:
			j := i
			for j < len(line) && !strings.ContainsRune(" \t\r", rune(line[j])) {
				j++
			}
			toks = append(toks, token{text: line[i:j]})
			i = j
		}
	}
	return toks, nil
}

var reserved = map[string]bool{
	"null": true, "undefined": true, "nosuper": true,
	"true": true, "false": true, "none": true,
}

func isIdentifier(name string) bool {
	if name == "" || reserved[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if (c == '-' || c == '+') && len(s) > 1 {
		c = s[1]
	}
	return (c >= '0' && c <= '9') || c == '.' || s == "NaN" || strings.HasSuffix(s, "Infinity")
}
