package normalizer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	n, err := Decode([]byte(`{"z":1,"a":{"y":true,"b":null},"m":[1,"two",3.5]}`))
	require.NoError(t, err)

	obj, ok := n.(*Object)
	require.True(t, ok, "expected *Object, got %T", n)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	inner, _ := obj.Get("a")
	assert.Equal(t, []string{"y", "b"}, inner.(*Object).Keys())

	seq, _ := obj.Get("m")
	assert.Equal(t, Seq{Number("1"), String("two"), Number("3.5")}, seq)
}

func TestDecode_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	n, err := Decode([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	obj := n.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	v, _ := obj.String("a")
	assert.Equal(t, "3", v)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty body", in: ""},
		{name: "html error page", in: "<html>Bad Gateway</html>"},
		{name: "truncated", in: `{"data":[{"id":1}`},
		{name: "trailing data", in: `{"data":null} {"data":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestDecode_TrailingDataSentinel(t *testing.T) {
	_, err := Decode([]byte(`{} []`))
	assert.True(t, errors.Is(err, ErrTrailingData), "got %v", err)
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	raw := `{"data":[{"id":1,"attributes":{"first":"Igor","last":"Minar","favorite":false,"notes":null,"score":1.25,"quote":"\"hi\""}}],"meta":{}}`

	n, err := Decode([]byte(raw))
	require.NoError(t, err)

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestFromValue(t *testing.T) {
	n := FromValue(map[string]any{
		"b":     2,
		"a":     "x",
		"c":     []any{true, nil, 1.5},
		"inner": ObjectOf("k", "v"),
	})

	obj, ok := n.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "inner"}, obj.Keys())

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":2,"c":[true,null,1.5],"inner":{"k":"v"}}`, string(out))
}

func TestFromValue_Struct(t *testing.T) {
	type payload struct {
		First string `json:"first"`
		Fav   *bool  `json:"favorite,omitempty"`
	}

	n := FromValue(payload{First: "Cat"})
	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"first":"Cat"}`, string(out))

	var nilPayload *payload
	assert.Equal(t, Null{}, FromValue(nilPayload))
}

func TestObject_Accessors(t *testing.T) {
	obj := ObjectOf("id", 12, "first", "Arisa", "favorite", "on", "flag", true, "bad", "maybe")

	id, ok := obj.String("id")
	assert.True(t, ok)
	assert.Equal(t, "12", id)

	fav, ok := obj.Bool("favorite")
	assert.True(t, ok)
	assert.True(t, fav)

	flag, ok := obj.Bool("flag")
	assert.True(t, ok)
	assert.True(t, flag)

	_, ok = obj.Bool("bad")
	assert.False(t, ok)

	_, ok = obj.String("missing")
	assert.False(t, ok)

	obj.Delete("first")
	assert.Equal(t, []string{"id", "favorite", "flag", "bad"}, obj.Keys())

	obj.Set("first", String("Arisa"))
	assert.Equal(t, 5, obj.Len())
	assert.True(t, strings.HasSuffix(strings.Join(obj.Keys(), ","), "first"))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(Null{}))
	assert.False(t, Truthy(Bool(false)))
	assert.False(t, Truthy(Number("0")))
	assert.False(t, Truthy(Number("0.0")))
	assert.False(t, Truthy(String("")))
	assert.True(t, Truthy(Number("-1")))
	assert.True(t, Truthy(String("0")))
	assert.True(t, Truthy(Seq{}))
	assert.True(t, Truthy(NewObject()))
}
