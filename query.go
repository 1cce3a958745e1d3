package infirmary

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Query holds URL query parameters. Values may be scalars, slices or nested maps;
// nested values are written with brackets, e.g. filter[from]=...&ids[0]=1&ids[1]=2.
type Query map[string]any

// Encode serializes the query with keys in sorted order. A nil value is written as an
// empty parameter, empty slices and maps are left out.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(q))
	for _, key := range sortedKeys(q) {
		pairs = appendQueryPairs(pairs, key, q[key])
	}
	return strings.Join(pairs, "&")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func appendQueryPairs(pairs []string, prefix string, value any) []string {
	if value == nil {
		return append(pairs, escapeQueryComponent(prefix)+"=")
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return append(pairs, escapeQueryComponent(prefix)+"=")
	}

	switch v := value.(type) {
	case Query:
		return appendQueryMap(pairs, prefix, map[string]any(v))
	case map[string]any:
		return appendQueryMap(pairs, prefix, v)
	case time.Time:
		return append(pairs, escapeQueryComponent(prefix)+"="+escapeQueryComponent(v.UTC().Format("2006-01-02T15:04:05.000Z")))
	case fmt.Stringer:
		return append(pairs, escapeQueryComponent(prefix)+"="+escapeQueryComponent(v.String()))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return append(pairs, escapeQueryComponent(prefix)+"=")
		}
		return appendQueryPairs(pairs, prefix, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			pairs = appendQueryPairs(pairs, prefix+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
		return pairs
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		nested := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nested[iter.Key().String()] = iter.Value().Interface()
		}
		return appendQueryMap(pairs, prefix, nested)
	}

	return append(pairs, escapeQueryComponent(prefix)+"="+escapeQueryComponent(formatQueryScalar(rv)))
}

func appendQueryMap(pairs []string, prefix string, m map[string]any) []string {
	for _, key := range sortedKeys(m) {
		pairs = appendQueryPairs(pairs, prefix+"["+key+"]", m[key])
	}
	return pairs
}

func formatQueryScalar(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(rv.Interface())
}

// escapeQueryComponent percent-encodes everything except RFC 3986 unreserved characters.
func escapeQueryComponent(in string) string {
	var sb strings.Builder
	sb.Grow(len(in))
	for i := 0; i < len(in); i++ {
		c := in[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(fmt.Sprintf("%%%02X", c))
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
