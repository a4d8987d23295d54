package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Decoding errors.
var (
	ErrUnexpectedToken = errors.New("unexpected JSON token")
	ErrTrailingData    = errors.New("trailing data after JSON document")
)

// Decode parses a JSON document into a Node, keeping object keys in the
// order they appear. When a key repeats inside one object the last value
// wins and the first position is kept.
func Decode(data []byte) (Node, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader is Decode for a stream holding exactly one JSON document.
func DecodeReader(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return n, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeSeq(dec)
		}

		return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, t)
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, tok)
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrUnexpectedToken, tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		obj.Set(key, value)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeSeq(dec *json.Decoder) (Seq, error) {
	seq := Seq{}

	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		seq = append(seq, value)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return seq, nil
}

// FromValue converts a plain Go value into a Node. Maps are walked in sorted
// key order; values without a direct mapping go through encoding/json.
func FromValue(v any) Node {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Node:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return Number(t)
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Null{}
		}

		return Number(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		seq := make(Seq, len(t))
		for i, el := range t {
			seq[i] = FromValue(el)
		}

		return seq
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromValue(t[k]))
		}

		return obj
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null{}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Null{}
	}

	n, err := Decode(data)
	if err != nil {
		return Null{}
	}

	return n
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}

	return []byte(n), nil
}

// MarshalJSON implements json.Marshaler.
func (s Seq) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler and preserves key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, o); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n Node) error {
	switch v := n.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case Number:
		b, _ := v.MarshalJSON()
		buf.Write(b)
	case String:
		b, err := json.Marshal(string(v))
		if err != nil {
			return err
		}

		buf.Write(b)
	case Seq:
		buf.WriteByte('[')

		for i, el := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeJSON(buf, el); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case *Object:
		if v == nil {
			buf.WriteString("null")
			return nil
		}

		buf.WriteByte('{')

		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}

			buf.Write(key)
			buf.WriteByte(':')

			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrUnexpectedToken, n)
	}

	return nil
}

// ToValue converts a Node back into plain Go values: nil, bool, json.Number,
// string, []any and map[string]any. Key order is lost.
func ToValue(n Node) any {
	switch v := n.(type) {
	case Bool:
		return bool(v)
	case Number:
		return json.Number(v)
	case String:
		return string(v)
	case Seq:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = ToValue(el)
		}

		return out
	case *Object:
		if v == nil {
			return nil
		}

		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = ToValue(f.Value)
		}

		return out
	}

	return nil
}
