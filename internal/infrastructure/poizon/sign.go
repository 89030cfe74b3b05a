package poizon

import (
	"crypto/md5" //nolint:gosec // signature algorithm mandated by the marketplace
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Sign canonicalizes the parameter set and digests it with the shared secret.
//
// Per the marketplace auth guide: drop empty parameters, sort keys in ASCII
// order, percent-encode key=value pairs joined with &, rewrite %20 to +,
// append the secret with no separator, MD5, uppercase hex. The %20 rewrite is
// a marketplace quirk; without it every signature silently mismatches.
func Sign(params map[string]any, secret string) string {
	return fmt.Sprintf("%X", md5.Sum([]byte(canonicalString(params)+secret))) //nolint:gosec
}

func canonicalString(params map[string]any) string {
	keys := make([]string, 0, len(params))

	for key, v := range params {
		if isEmptyValue(v) {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, encodeComponent(key)+"="+encodeComponent(valueString(params[key])))
	}

	return strings.ReplaceAll(strings.Join(pairs, "&"), "%20", "+")
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)

	return ok && s == ""
}

// valueString serializes a parameter value: slices become comma-joined
// serializations of their elements (composite elements are JSON-encoded),
// composite values are JSON-encoded, scalars use their natural string form.
func valueString(v any) string {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, elementString(rv.Index(i).Interface()))
		}

		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return mustMarshal(v)
	case reflect.Ptr:
		if rv.IsNil() {
			return ""
		}

		return valueString(rv.Elem().Interface())
	default:
		return scalarString(v)
	}
}

func elementString(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return mustMarshal(v)
	default:
		return scalarString(v)
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(b)
}

const upperhex = "0123456789ABCDEF"

// encodeComponent mirrors the JS encodeURIComponent the marketplace verifies
// against: unreserved characters plus ! ~ * ' ( ) stay literal, everything
// else is percent-encoded per UTF-8 byte.
func encodeComponent(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}

	return b.String()
}

func isComponentSafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
