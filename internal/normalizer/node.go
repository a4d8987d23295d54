// Package normalizer flattens CMS response envelopes into flat records.
//
// The CMS wraps every record as {"id": ..., "attributes": {...}} and every
// relation as {"data": <record or list>}. Documents are decoded into a closed
// set of Node variants so the flattening code never has to sniff shapes out of
// map[string]interface{} values.
package normalizer

import (
	"encoding/json"
	"strconv"
)

// Node is one value of a decoded CMS document. The concrete variants are
// Null, Bool, Number, String, Seq and *Object.
type Node interface {
	node()
}

// Null is the JSON null.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept in its textual form.
type Number json.Number

// String is a JSON string.
type String string

// Seq is an ordered JSON array.
type Seq []Node

func (Null) node()    {}
func (Bool) node()    {}
func (Number) node()  {}
func (String) node()  {}
func (Seq) node()     {}
func (*Object) node() {}

// Field is a single key/value pair of an Object.
type Field struct {
	Value Node
	Key   string
}

// Object is a JSON object with JavaScript property order: array index keys
// ("0", "1", ...) come first in ascending numeric order, then every other key
// in the order it was first set.
type Object struct {
	index  map[string]int
	fields []Field
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// ObjectOf builds an object from alternating key/value arguments.
// Values are converted with FromValue.
func ObjectOf(kv ...any) *Object {
	obj := NewObject()

	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}

		obj.Set(key, FromValue(kv[i+1]))
	}

	return obj
}

// Set assigns value to key. A key that already exists keeps its position.
func (o *Object) Set(key string, value Node) {
	if value == nil {
		value = Null{}
	}

	if o.index == nil {
		o.index = map[string]int{}
	}

	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return
	}

	n, ok := arrayIndex(key)
	if !ok {
		o.index[key] = len(o.fields)
		o.fields = append(o.fields, Field{Key: key, Value: value})

		return
	}

	// Index keys form a sorted prefix of fields.
	pos := 0
	for pos < len(o.fields) {
		m, isIndex := arrayIndex(o.fields[pos].Key)
		if !isIndex || m > n {
			break
		}

		pos++
	}

	o.fields = append(o.fields, Field{})
	copy(o.fields[pos+1:], o.fields[pos:])
	o.fields[pos] = Field{Key: key, Value: value}

	for j := pos; j < len(o.fields); j++ {
		o.index[o.fields[j].Key] = j
	}
}

// arrayIndex reports whether key is a canonical array index, as JavaScript
// defines it, and returns its value.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}

	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}

	return n, true
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Node, bool) {
	if o == nil {
		return nil, false
	}

	i, ok := o.index[key]
	if !ok {
		return nil, false
	}

	return o.fields[i].Value, true
}

// Has reports whether key is present, whatever its value.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key and keeps the order of the remaining keys.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}

	i, ok := o.index[key]
	if !ok {
		return
	}

	o.fields = append(o.fields[:i], o.fields[i+1:]...)
	delete(o.index, key)

	for j := i; j < len(o.fields); j++ {
		o.index[o.fields[j].Key] = j
	}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.fields)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}

	return keys
}

// Fields returns a copy of the key/value pairs in order.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}

	out := make([]Field, len(o.fields))
	copy(out, o.fields)

	return out
}

// String returns the value under key rendered as text. Numbers are returned
// in their JSON form so numeric CMS ids read as strings.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}

	switch s := v.(type) {
	case String:
		return string(s), true
	case Number:
		return string(s), true
	case Bool:
		return strconv.FormatBool(bool(s)), true
	}

	return "", false
}

// Bool returns the boolean under key. String values such as "true" or "on"
// coming from submitted forms are accepted as well.
func (o *Object) Bool(key string) (bool, bool) {
	v, ok := o.Get(key)
	if !ok {
		return false, false
	}

	switch b := v.(type) {
	case Bool:
		return bool(b), true
	case String:
		if b == "on" {
			return true, true
		}

		parsed, err := strconv.ParseBool(string(b))
		if err != nil {
			return false, false
		}

		return parsed, true
	}

	return false, false
}

// Truthy mirrors how the CMS client treats "empty-ish" values: nil, null,
// false, zero and the empty string are falsy, everything else is truthy.
func Truthy(n Node) bool {
	switch v := n.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(v)
	case String:
		return v != ""
	case Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f != 0
	case *Object:
		return v != nil
	case Seq:
		return true
	}

	return false
}
