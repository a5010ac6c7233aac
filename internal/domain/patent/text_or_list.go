package patent

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TextOrList holds a patent attribute that upstream sources deliver either as
// one free-form string or as a structured list.  The original shape is kept
// so it round-trips through storage unchanged.
//
// The zero value is empty and marshals as [].
type TextOrList[T any] struct {
	text   string
	items  []T
	isText bool
}

// RawText wraps a free-form string.
func RawText[T any](s string) TextOrList[T] {
	return TextOrList[T]{text: s, isText: true}
}

// Structured wraps a list.
func Structured[T any](items []T) TextOrList[T] {
	return TextOrList[T]{items: items}
}

// IsText reports whether the value holds a raw string.
func (v TextOrList[T]) IsText() bool { return v.isText }

// Text returns the raw string, or "" for structured values.
func (v TextOrList[T]) Text() string { return v.text }

// Items returns the structured list, or nil for raw text.
func (v TextOrList[T]) Items() []T { return v.items }

// IsEmpty reports whether the value carries no content at all.
func (v TextOrList[T]) IsEmpty() bool {
	if v.isText {
		return len(bytes.TrimSpace([]byte(v.text))) == 0
	}
	return len(v.items) == 0
}

func (v TextOrList[T]) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	if v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.items)
}

func (v *TextOrList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = TextOrList[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawText[T](s)
		return nil
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = Structured(items)
		return nil
	default:
		return fmt.Errorf("patent: expected string or list, got %s", kindOf(data[0]))
	}
}

// Scan implements sql.Scanner for JSONB columns.
func (v *TextOrList[T]) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v = TextOrList[T]{}
		return nil
	case []byte:
		return v.UnmarshalJSON(s)
	case string:
		return v.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("patent: cannot scan %T into TextOrList", src)
	}
}

// Value implements driver.Valuer.
func (v TextOrList[T]) Value() (driver.Value, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func kindOf(b byte) string {
	switch {
	case b == '{':
		return "object"
	case b == 't' || b == 'f':
		return "boolean"
	case b == '-' || (b >= '0' && b <= '9'):
		return "number"
	default:
		return fmt.Sprintf("%q", b)
	}
}

//Personal.AI order the ending
