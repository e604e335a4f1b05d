package queuecheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// Errors returned by Parse.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingValue   = errors.New("push requires a value")
	ErrInvalidValue   = errors.New("invalid push value")
)

// ParseInt parses a decimal push value.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseUnit accepts "()" or an empty value.
func ParseUnit(s string) (struct{}, error) {
	if s != "" && s != "()" {
		return struct{}{}, fmt.Errorf("want () for a unit value, got %q", s)
	}

	return struct{}{}, nil
}

// Parse turns a textual sequence into commands.
//
// Fields are commands separated by whitespace or commas. Accepted forms are
// "get", "reset", "push 3", "push:3" and "Push(3)", case-insensitive. Unit
// payloads may be written as a bare "push". payload is attached to every Push
// so parsed sequences shrink like generated ones.
func Parse[T any, M Model[T, M]](
	fields []string,
	parseValue func(string) (T, error),
	payload statecheck.Gen[T],
	opts Options,
) ([]Command[T, M], error) {
	tokens := tokenize(fields)

	var unitPayload bool
	if _, err := parseValue(""); err == nil {
		unitPayload = true
	}

	var cmds []Command[T, M]

	for i := 0; i < len(tokens); i++ {
		tok := strings.ToLower(tokens[i])

		switch {
		case tok == VariantGet:
			cmds = append(cmds, &Get[T, M]{})
		case tok == VariantReset:
			cmds = append(cmds, &Reset[T, M]{Strict: opts.StrictReset})
		case strings.HasPrefix(tok, VariantPush):
			raw, inline := inlineValue(tokens[i][len(VariantPush):])

			if !inline {
				switch {
				case i+1 < len(tokens) && !isKeyword(tokens[i+1]):
					i++
					raw = tokens[i]
				case unitPayload:
					raw = ""
				default:
					return nil, fmt.Errorf("%w: position %d", ErrMissingValue, len(cmds))
				}
			}

			v, err := parseValue(raw)
			if err != nil {
				return nil, fmt.Errorf("%w %q at position %d: %w", ErrInvalidValue, raw, len(cmds), err)
			}

			cmds = append(cmds, NewPush[T, M](payload, v))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[i])
		}
	}

	return cmds, nil
}

// Format renders commands in the form Parse accepts.
func Format[T any, M Model[T, M]](cmds []Command[T, M]) string {
	return strings.Join(statecheck.FormatCommands(cmds), " ")
}

func tokenize(fields []string) []string {
	var tokens []string

	for _, f := range fields {
		tokens = append(tokens, strings.FieldsFunc(f, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
		})...)
	}

	return tokens
}

// inlineValue extracts the value of "push:3", "push(3)" or "push=3" from the
// text following "push". inline is false for a bare "push".
func inlineValue(rest string) (string, bool) {
	switch {
	case rest == "":
		return "", false
	case strings.HasPrefix(rest, ":"), strings.HasPrefix(rest, "="):
		return rest[1:], true
	case strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")"):
		return rest[1 : len(rest)-1], true
	default:
		return rest, true
	}
}

func isKeyword(tok string) bool {
	tok = strings.ToLower(tok)

	return tok == VariantGet || tok == VariantReset || strings.HasPrefix(tok, VariantPush)
}
