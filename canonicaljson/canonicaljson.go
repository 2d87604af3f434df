// Package canonicaljson serializes rawjson values per RFC 8785 (JCS) and
// compares them structurally.
//
// Marshal produces RFC 8785 bytes, which format numbers as IEEE-754 doubles.
// Equal and Hash use the same member ordering but compare numbers by exact
// decimal value, so 9007199254740993 and 9007199254740992 differ and numbers
// outside the float64 range are still comparable. Member order and number
// spelling (1.0 vs 1, 1e3 vs 1000) never matter.
//
// References:
// - RFC 8785: JSON Canonicalization Scheme (JCS): https://www.rfc-editor.org/rfc/rfc8785
package canonicaljson

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cockroachdb/apd/v3"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Marshal returns the RFC 8785 encoding of v.
//
// v may be raw JSON text ([]byte or json.RawMessage), a rawjson value, or any
// Go value encoding/json can marshal.
//
// Notes:
// - Objects are sorted by member names using UTF-16 code unit lexicographic order.
// - Arrays preserve order.
// - \b, \t, \n, \f, \r use shorthand escapes; remaining control characters use \u00XX (lowercase hex).
// - Numbers use ECMAScript-compatible serialization.
// - Output is compact.
func Marshal(v any) ([]byte, error) {
	val, err := normalize(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJCS(&buf, val, formatJCSNumber); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exact is like Marshal but writes every number in its reduced decimal form.
func exact(v any) ([]byte, error) {
	val, err := normalize(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJCS(&buf, val, formatExactNumber); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Equal reports whether a and b are structurally equal JSON, numbers compared
// by exact value.
func Equal(a, b any) (bool, error) {
	ca, err := exact(a)
	if err != nil {
		return false, err
	}
	cb, err := exact(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// Hash returns the hex SHA-256 digest of the exact canonical form of v.
// Values that are Equal have the same hash.
func Hash(v any) (string, error) {
	c, err := exact(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(c)
	return hex.EncodeToString(sum[:]), nil
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case json.RawMessage:
		return rawjson.Parse(x)
	case []byte:
		return rawjson.Parse(x)
	case nil, bool, string, json.Number, []any, *rawjson.Object:
		return v, nil
	default:
		return rawjson.FromGo(v)
	}
}

func writeJCS(buf *bytes.Buffer, v any, number func(string) (string, error)) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		writeJCSString(buf, x)
		return nil
	case json.Number:
		s, err := number(x.String())
		if err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJCS(buf, item, number); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *rawjson.Object:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		type member struct {
			name  string
			units []uint16
			val   any
		}
		members := make([]member, 0, x.Len())
		for k, val := range x.Entries() {
			members = append(members, member{name: k, units: utf16.Encode([]rune(k)), val: val})
		}
		sort.Slice(members, func(i, j int) bool {
			return lessUTF16(members[i].units, members[j].units)
		})

		buf.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJCSString(buf, m.name)
			buf.WriteByte(':')
			if err := writeJCS(buf, m.val, number); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		// Stored through Object.Set without normalization.
		n, err := rawjson.FromGo(v)
		if err != nil {
			return err
		}
		switch n.(type) {
		case nil, bool, string, json.Number, []any, *rawjson.Object:
			return writeJCS(buf, n, number)
		}
		return errors.New("canonicaljson: unsupported JSON value type")
	}
}

func lessUTF16(a, b []uint16) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func writeJCSString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r <= 0x1F:
			buf.WriteString(`\u00`)
			buf.WriteString(hex.EncodeToString([]byte{byte(r)}))
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// formatJCSNumber parses s as an IEEE-754 double, as RFC 8785 requires.
func formatJCSNumber(s string) (string, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.New("canonicaljson: invalid number: NaN or Infinity")
	}
	if f == 0 {
		return "0", nil
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64)), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// formatExactNumber writes s with trailing zeros removed from the
// coefficient. Equal values produce the same text.
func formatExactNumber(s string) (string, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("canonicaljson: invalid number %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return "", errors.New("canonicaljson: invalid number: NaN or Infinity")
	}
	if d.IsZero() {
		return "0", nil
	}
	var r apd.Decimal
	r.Reduce(d)
	return r.String(), nil
}

// trimExponent turns Go's padded exponent (1e-07) into the ECMAScript form (1e-7).
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	sign, exp := s[i+1], strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+1] + string(sign) + exp
}
