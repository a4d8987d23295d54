package normalizer

import "strconv"

// Reserved envelope keys.
const (
	AttributesKey = "attributes"
	DataKey       = "data"
)

// Normalize flattens a CMS node.
//
// Falsy input yields Null. A Seq is normalized element by element. For an
// Object the result is built in three passes, each overwriting the previous
// one on key collisions:
//
//  1. every attributes entry, with {"data": x} relation wrappers replaced by
//     Normalize(x);
//  2. every sibling key other than attributes and data;
//  3. the keys of Normalize(data) when data is truthy.
//
// Truthy scalars are returned unchanged. Normalize never panics.
func Normalize(n Node) Node {
	if !Truthy(n) {
		return Null{}
	}

	switch v := n.(type) {
	case Seq:
		out := make(Seq, len(v))
		for i, el := range v {
			out[i] = Normalize(el)
		}

		return out
	case *Object:
		return flatten(v)
	}

	return n
}

func flatten(obj *Object) *Object {
	flat := NewObject()

	if attrs, ok := obj.Get(AttributesKey); ok {
		if a, isObj := attrs.(*Object); isObj && a != nil {
			for _, f := range a.fields {
				if rel, isRel := f.Value.(*Object); isRel && rel.Has(DataKey) {
					inner, _ := rel.Get(DataKey)
					flat.Set(f.Key, Normalize(inner))

					continue
				}

				flat.Set(f.Key, f.Value)
			}
		}
	}

	for _, f := range obj.fields {
		if f.Key == AttributesKey || f.Key == DataKey {
			continue
		}

		flat.Set(f.Key, f.Value)
	}

	if data, ok := obj.Get(DataKey); ok && Truthy(data) {
		merge(flat, Normalize(data))
	}

	return flat
}

// merge spreads src into dst the way an object spread would: object keys are
// copied over, sequence elements land under their index, scalars add nothing.
func merge(dst *Object, src Node) {
	switch v := src.(type) {
	case *Object:
		for _, f := range v.fields {
			dst.Set(f.Key, f.Value)
		}
	case Seq:
		for i, el := range v {
			dst.Set(strconv.Itoa(i), el)
		}
	}
}
