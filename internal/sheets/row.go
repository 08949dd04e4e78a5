package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one untyped record as the store returns it. Spreadsheet cells come
// back as strings or numbers depending on what was last written, so the
// accessors normalize both.
type Row map[string]any

// String returns the value under key rendered as a string. Missing keys and
// nulls become "".
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Whole numbers must not pick up a ".000000" tail.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int parses the value under key as an integer. Empty cells count as zero.
func (r Row) Int(key string) (int, error) {
	switch v := r[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("sheets: column %q is not an integer: %q", key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("sheets: column %q has unsupported type %T", key, v)
	}
}
