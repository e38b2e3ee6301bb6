package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AnyKind discriminates the variants of Any.
type AnyKind uint8

const (
	AnyKindNull AnyKind = iota
	AnyKindBool
	AnyKindInt
	AnyKindFloat
	AnyKindString
	AnyKindArray
	AnyKindObject
)

// String returns a human-readable variant name.
func (k AnyKind) String() string {
	switch k {
	case AnyKindNull:
		return "null"
	case AnyKindBool:
		return "bool"
	case AnyKindInt:
		return "int"
	case AnyKindFloat:
		return "float"
	case AnyKindString:
		return "string"
	case AnyKindArray:
		return "array"
	case AnyKindObject:
		return "object"
	}
	return fmt.Sprintf("AnyKind(%d)", uint8(k))
}

// Any is a JSON value of no fixed schema: exactly one of explicit
// null, bool, int64, float64, string, array, or object. Response
// fields whose shape the node does not pin down are typed as Any.
//
// Only the payload field selected by Kind is meaningful; the others
// stay at their zero values. Use the constructors rather than struct
// literals to keep that invariant. The fields are exported so the
// binary form can carry an Any verbatim.
type Any struct {
	Kind    AnyKind     `cramberry:"1"`
	Bool    bool        `cramberry:"2"`
	Int     int64       `cramberry:"3"`
	Float   float64     `cramberry:"4"`
	Str     string      `cramberry:"5"`
	Elems   []Any       `cramberry:"6"`
	Members []AnyMember `cramberry:"7"`
}

// AnyMember is one key/value pair of an object Any. Member order is
// preserved across decode/encode; keys are unique within an object.
type AnyMember struct {
	Key   string `cramberry:"1"`
	Value Any    `cramberry:"2"`
}

// AnyNull returns the explicit null value. Distinct from a member
// being absent: a null member encodes as JSON null under its key.
func AnyNull() Any { return Any{Kind: AnyKindNull} }

// AnyBool returns a bool value.
func AnyBool(b bool) Any { return Any{Kind: AnyKindBool, Bool: b} }

// AnyInt returns an int value.
func AnyInt(i int64) Any { return Any{Kind: AnyKindInt, Int: i} }

// AnyFloat returns a float value.
func AnyFloat(f float64) Any { return Any{Kind: AnyKindFloat, Float: f} }

// AnyString returns a string value.
func AnyString(s string) Any { return Any{Kind: AnyKindString, Str: s} }

// AnyArray returns an array value. An empty array is valid.
func AnyArray(elems ...Any) Any { return Any{Kind: AnyKindArray, Elems: elems} }

// AnyObject returns an object value with the given members in order.
func AnyObject(members ...AnyMember) Any {
	return Any{Kind: AnyKindObject, Members: members}
}

// Get looks up a member of an object value by key.
func (v Any) Get(key string) (Any, bool) {
	if v.Kind != AnyKindObject {
		return Any{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Any{}, false
}

// Equal reports deep equality of two values.
func (v Any) Equal(o Any) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case AnyKindNull:
		return true
	case AnyKindBool:
		return v.Bool == o.Bool
	case AnyKindInt:
		return v.Int == o.Int
	case AnyKindFloat:
		return v.Float == o.Float
	case AnyKindString:
		return v.Str == o.Str
	case AnyKindArray:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case AnyKindObject:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for i := range v.Members {
			if v.Members[i].Key != o.Members[i].Key ||
				!v.Members[i].Value.Equal(o.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the JSON form, for logs and test failures.
func (v Any) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid Any: %v>", err)
	}
	return string(data)
}

// UnmarshalJSON decodes an arbitrary JSON document into a value tree.
//
// Each token is classified by its syntax: quoted tokens are always
// strings, even when their content looks numeric. Number literals
// prefer the int variant — a whole-number literal like 5.0 decodes to
// int when exactly representable, matching the node's convention of
// sending whole numbers as bare integers — and an integer literal
// outside int64 range falls through to the float variant, never
// wrapping. Decoding is all-or-nothing: the first unclassifiable
// sub-node fails the whole tree with a DecodeError naming its path.
func (v *Any) UnmarshalJSON(data []byte) error {
	decoded, err := decodeAny("$", data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func decodeAny(path string, data []byte) (Any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Any{}, &DecodeError{Path: path, Msg: "empty input"}
	}

	// encoding/json leaves the target untouched on a null token, so
	// null has to be recognized up front; no other interpretation can
	// claim it.
	if bytes.Equal(trimmed, []byte("null")) {
		return AnyNull(), nil
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		return AnyBool(b), nil
	}

	// A quoted numeric string unmarshals into json.Number, so string
	// tokens must be claimed before the number branch ever runs. The
	// leading byte settles which one the token is.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Any{}, &DecodeError{Path: path, Msg: err.Error()}
		}
		return AnyString(s), nil
	}

	if trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9') {
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Any{}, &DecodeError{Path: path, Msg: err.Error()}
		}
		return decodeNumber(path, n)
	}

	if trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return Any{}, &DecodeError{Path: path, Msg: err.Error()}
		}
		elems := make([]Any, len(raws))
		for i, raw := range raws {
			elem, err := decodeAny(fmt.Sprintf("%s[%d]", path, i), raw)
			if err != nil {
				return Any{}, err
			}
			elems[i] = elem
		}
		return AnyArray(elems...), nil
	}

	if trimmed[0] == '{' {
		return decodeObject(path, trimmed)
	}

	return Any{}, &DecodeError{Path: path, Msg: fmt.Sprintf("unclassifiable token %s", abbreviate(trimmed))}
}

// decodeNumber classifies a JSON number literal. Int wins whenever the
// value is a whole number exactly representable as int64.
func decodeNumber(path string, n json.Number) (Any, error) {
	if i, err := n.Int64(); err == nil {
		return AnyInt(i), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		// Syntactically valid JSON number beyond float64 range.
		return Any{}, &DecodeError{Path: path, Msg: fmt.Sprintf("number %s out of range", n)}
	}
	if f == math.Trunc(f) && f >= -9.223372036854775808e18 && f < 9.223372036854775808e18 {
		if i := int64(f); float64(i) == f {
			return AnyInt(i), nil
		}
	}
	return AnyFloat(f), nil
}

// decodeObject walks an object with json.Decoder so member order
// survives the round trip.
func decodeObject(path string, data []byte) (Any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return Any{}, &DecodeError{Path: path, Msg: err.Error()}
	}
	var members []AnyMember
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Any{}, &DecodeError{Path: path, Msg: err.Error()}
		}
		key, ok := keyTok.(string)
		if !ok {
			return Any{}, &DecodeError{Path: path, Msg: fmt.Sprintf("non-string member key %v", keyTok)}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Any{}, &DecodeError{Path: path + "." + key, Msg: err.Error()}
		}
		value, err := decodeAny(path+"."+key, raw)
		if err != nil {
			return Any{}, err
		}
		// Duplicate keys collapse to the last value, at the position
		// of the first occurrence.
		replaced := false
		for i := range members {
			if members[i].Key == key {
				members[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			members = append(members, AnyMember{Key: key, Value: value})
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return Any{}, &DecodeError{Path: path, Msg: err.Error()}
	}
	return AnyObject(members...), nil
}

func abbreviate(data []byte) string {
	const max = 24
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}

// MarshalJSON is the deterministic inverse of UnmarshalJSON. The null
// variant writes an explicit JSON null; object members are written in
// stored order through the same per-member routine.
func (v Any) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeAny(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeAny(buf *bytes.Buffer, v Any) error {
	switch v.Kind {
	case AnyKindNull:
		buf.WriteString("null")
	case AnyKindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case AnyKindInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case AnyKindFloat:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return fmt.Errorf("float value %v has no JSON form", v.Float)
		}
		buf.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case AnyKindString:
		quoted, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(quoted)
	case AnyKindArray:
		buf.WriteByte('[')
		for i, elem := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeAny(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case AnyKindObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			quoted, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(quoted)
			buf.WriteByte(':')
			if err := encodeAny(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("invalid Any kind %d", v.Kind)
	}
	return nil
}
