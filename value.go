package layeredconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the semantic type of a configuration value. Kind values
// also serve as type placeholders: using a Kind as a default value in a
// Defaults source declares the expected type of a key without supplying a
// value for it.
type Kind int

const (
	// KindString is the identity type; untyped backends produce it.
	KindString Kind = iota
	// KindInt is a base-10 integer.
	KindInt
	// KindBool parses case-insensitive "true"/"false" and serializes as
	// "True"/"False".
	KindBool
	// KindList is a list of strings, "a, b, c" in text formats.
	KindList
	// KindDate is a calendar day, "2006-01-02".
	KindDate
	// KindDateTime is a timestamp, "2006-01-02 15:04:05".
	KindDateTime
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Coerce parses a raw string into the semantic type named by kind.
// Malformed input fails with ErrCoerce rather than falling back to a string.
func Coerce(raw string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as int", ErrCoerce, raw)
		}
		return i, nil
	case KindBool:
		if strings.EqualFold(raw, "true") {
			return true, nil
		}
		if strings.EqualFold(raw, "false") {
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q as bool", ErrCoerce, raw)
	case KindList:
		parts := strings.Split(raw, ",")
		list := make([]string, len(parts))
		for i, p := range parts {
			list[i] = strings.TrimSpace(p)
		}
		return list, nil
	case KindDate:
		t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as date", ErrCoerce, raw)
		}
		return t, nil
	case KindDateTime:
		t, err := time.ParseInLocation(dateTimeLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as datetime", ErrCoerce, raw)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unsupported kind %v", ErrCoerce, kind)
}

// Format serializes a typed value to its canonical string encoding, the
// inverse of Coerce. Values outside the supported kinds fall back to fmt.
func Format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case []string:
		return strings.Join(v, ", ")
	case time.Time:
		if isMidnight(v) {
			return v.Format(dateLayout)
		}
		return v.Format(dateTimeLayout)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// KindOfValue infers the semantic kind of a native value. The second return
// is false for values outside the supported kind set (floats, maps, nil).
// A midnight UTC instant classifies as a date; the string encodings carry the
// same ambiguity, so this loses no information a text round-trip would keep.
func KindOfValue(value any) (Kind, bool) {
	switch v := value.(type) {
	case string:
		return KindString, true
	case int, int64:
		return KindInt, true
	case bool:
		return KindBool, true
	case []string:
		return KindList, true
	case time.Time:
		if isMidnight(v) {
			return KindDate, true
		}
		return KindDateTime, true
	}
	return KindString, false
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// normalizeValue canonicalizes backend-specific representations so that
// layered values compare cleanly: integers become int, numeric strings from
// json.Number are resolved, arrays become []string, timestamps become UTC
// time.Time. Maps pass through untouched; they are subsections, not values.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return float64(v)
	case time.Time:
		return v.UTC()
	case []any:
		list := make([]string, len(v))
		for i, e := range v {
			list[i] = Format(normalizeValue(e))
		}
		return list
	case interface{ Int64() (int64, error) }: // json.Number
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if s, ok := value.(fmt.Stringer); ok {
			if f, err := strconv.ParseFloat(s.String(), 64); err == nil {
				return f
			}
		}
		return fmt.Sprintf("%v", value)
	}
	return value
}
