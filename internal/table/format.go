package table

import (
	"fmt"
	"strconv"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Format renders a value for row-oriented files. Null renders as "".
func Format(kind Kind, v any) string {
	if v == nil {
		return ""
	}
	switch kind {
	case Int:
		return strconv.FormatInt(v.(int64), 10)
	case Float:
		return strconv.FormatFloat(v.(float64), 'f', -1, 64)
	case Date:
		return v.(time.Time).Format(DateLayout)
	case DateTime:
		return v.(time.Time).Format(DateTimeLayout)
	default:
		return fmt.Sprint(v)
	}
}

// Parse is the inverse of Format. An empty cell parses as null.
func Parse(kind Kind, s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	switch kind {
	case Int:
		return strconv.ParseInt(s, 10, 64)
	case Float:
		return strconv.ParseFloat(s, 64)
	case Date:
		return time.Parse(DateLayout, s)
	case DateTime:
		return time.Parse(DateTimeLayout, s)
	case String:
		return s, nil
	}
	return nil, fmt.Errorf("unknown kind %s", kind)
}
