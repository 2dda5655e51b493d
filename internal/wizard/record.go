package wizard

import (
	"fmt"
	"strings"
)

// FieldKind is the value shape a form field holds.
type FieldKind int

const (
	KindString FieldKind = iota
	KindBool
	KindList
)

func (k FieldKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	}
	return "string"
}

// Record is one visitor's answers for one variant. Values are string, bool or []string.
type Record map[string]interface{}

func (r Record) String(name string) string {
	s, _ := r[name].(string)
	return s
}

func (r Record) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

func (r Record) List(name string) []string {
	l, _ := r[name].([]string)
	return l
}

// Clone deep-copies list values so the copy can be mutated independently.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if l, ok := v.([]string); ok {
			cp := make([]string, len(l))
			copy(cp, l)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// ErrorMap maps a field name to the message shown next to it. The "submit" key carries
// submission failures.
type ErrorMap map[string]string

// SubmitErrorKey is the ErrorMap entry for a failed submission.
const SubmitErrorKey = "submit"

func (e ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// checkKind reports whether value has exactly the shape kind requires.
func checkKind(kind FieldKind, value interface{}) (interface{}, bool) {
	switch kind {
	case KindString:
		s, ok := value.(string)
		return s, ok
	case KindBool:
		b, ok := value.(bool)
		return b, ok
	case KindList:
		switch l := value.(type) {
		case []string:
			cp := make([]string, len(l))
			copy(cp, l)
			return cp, true
		case []interface{}:
			// decoded JSON arrays
			out := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		}
	}
	return nil, false
}

// ParseFormValue converts submitted HTML form values into the field's kind. Checkboxes and
// yes/no radios post "true", "on" or "1".
func ParseFormValue(kind FieldKind, values []string) (interface{}, error) {
	switch kind {
	case KindList:
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out, nil
	case KindBool:
		if len(values) == 0 {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(values[len(values)-1])) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no", "":
			return false, nil
		default:
			return nil, fmt.Errorf("not a boolean: %q", values[len(values)-1])
		}
	default:
		if len(values) == 0 {
			return "", nil
		}
		return strings.TrimSpace(values[0]), nil
	}
}
