package cypher

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Presubstitution markers delimit structural query fragments, such as labels
// and relationship types, that the protocol cannot accept as bound
// parameters. The guillemet pair never appears in normal query syntax.
const (
	presubOpen  = "«"
	presubClose = "»"
)

// Range renders as a contiguous integer range literal, start..end.
type Range struct {
	Start int64
	End   int64
}

// Presubstitute scans a statement left-to-right for «key» markers and
// splices the rendered parameter value into the text in place of each
// marker. It returns the rewritten statement together with a parameter map
// from which every consumed key has been removed, so consumed keys are never
// also sent as bound parameters. The transform is pure; the input map is not
// modified.
func Presubstitute(statement string, parameters map[string]any) (string, map[string]any, error) {
	consumed := map[string]bool{}

	var b strings.Builder
	remainder := statement
	for {
		before, after, found := strings.Cut(remainder, presubOpen)
		b.WriteString(before)
		if !found {
			break
		}
		// An unterminated marker consumes the rest of the statement as
		// the key, which then fails lookup unless such a parameter
		// exists.
		key, rest, _ := strings.Cut(after, presubClose)
		value, ok := parameters[key]
		if !ok {
			return "", nil, &PresubstitutionError{Key: key}
		}
		consumed[key] = true
		b.WriteString(renderFragment(value))
		remainder = rest
	}

	bound := make(map[string]any, len(parameters))
	for k, v := range parameters {
		if !consumed[k] {
			bound[k] = v
		}
	}
	return b.String(), bound, nil
}

// renderFragment renders a presubstitution value as literal query text.
func renderFragment(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case Range:
		return fmt.Sprintf("%d..%d", v.Start, v.End)
	case string:
		return escapeIdentifier(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = escapeIdentifier(fmt.Sprint(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ":")
	}
	return escapeIdentifier(fmt.Sprint(value))
}

// escapeIdentifier makes a name safe for splicing into identifier position.
// Simple names pass through bare; anything else is backtick-quoted with
// embedded backticks doubled.
func escapeIdentifier(name string) string {
	if isSimpleIdentifier(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func isSimpleIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
