// Package jsonspan pulls a JSON object out of free-form model output.
//
// Models often wrap the object in prose or code fences.  Extract keeps the
// text between the first '{' and the last '}' inclusive and leaves parsing to
// the caller.
package jsonspan

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

// ErrNoObject is returned when the text has no '{' ... '}' span.
var ErrNoObject = errors.New(errors.ErrCodeLLMResponseInvalid, "no JSON object found in completion")

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Extract returns the outermost brace-delimited span of s.
func Extract(s string) (string, error) {
	s = strings.TrimSpace(s)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	span := objectPattern.FindString(s)
	if span == "" {
		return "", ErrNoObject
	}
	return span, nil
}

// Decode extracts the span from s and unmarshals it into v.
func Decode(s string, v any) error {
	span, err := Extract(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return errors.Wrap(err, errors.ErrCodeLLMResponseInvalid, "completion JSON is malformed")
	}
	return nil
}

//Personal.AI order the ending
