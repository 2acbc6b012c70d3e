package conv

import (
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Celsius float64

type Level int

func TestConverter_Convert(t *testing.T) {
	var testCases = []struct {
		description string
		src         interface{}
		destType    reflect.Type
		options     Options
		expect      interface{}
		expectError bool
	}{
		{description: "int to string", src: 123, destType: reflect.TypeOf(""), expect: "123"},
		{description: "float to string", src: 123.456, destType: reflect.TypeOf(""), expect: "123.456"},
		{description: "bytes to string", src: []byte("hello"), destType: reflect.TypeOf(""), expect: "hello"},
		{description: "string to bool", src: "true", destType: reflect.TypeOf(true), expect: true},
		{description: "numeric string to bool", src: "0", destType: reflect.TypeOf(true), expect: false},
		{description: "json number to int", src: 30.0, destType: reflect.TypeOf(0), expect: 30},
		{description: "string to int", src: "42", destType: reflect.TypeOf(0), expect: 42},
		{description: "float string to int", src: "42.7", destType: reflect.TypeOf(0), expect: 42},
		{description: "fractional strict", src: 42.7, destType: reflect.TypeOf(0), options: Options{StrictNumbers: true}, expectError: true},
		{description: "int8 overflow", src: 300, destType: reflect.TypeOf(int8(0)), expectError: true},
		{description: "negative uint", src: -1, destType: reflect.TypeOf(uint(0)), expectError: true},
		{description: "string to uint", src: "7", destType: reflect.TypeOf(uint16(0)), expect: uint16(7)},
		{description: "string to float", src: "1.5", destType: reflect.TypeOf(float32(0)), expect: float32(1.5)},
		{description: "named float", src: 21.5, destType: reflect.TypeOf(Celsius(0)), expect: Celsius(21.5)},
		{description: "named int from json number", src: 3.0, destType: reflect.TypeOf(Level(0)), expect: Level(3)},
		{description: "pointer destination", src: 5, destType: reflect.TypeOf((*int)(nil)), expect: intPtr(5)},
		{description: "pointer source", src: intPtr(6), destType: reflect.TypeOf(0), expect: 6},
		{description: "nil source", src: nil, destType: reflect.TypeOf(""), expect: ""},
		{description: "scalar to slice", src: "a", destType: reflect.TypeOf([]string{}), expect: []string{"a"}},
		{description: "interface slice to ints", src: []interface{}{1.0, "2"}, destType: reflect.TypeOf([]int{}), expect: []int{1, 2}},
		{description: "string to bytes", src: "ab", destType: reflect.TypeOf([]byte{}), expect: []byte("ab")},
		{description: "map to typed map", src: map[string]interface{}{"a": 1.0}, destType: reflect.TypeOf(map[string]int{}), expect: map[string]int{"a": 1}},
		{description: "yaml map to typed map", src: map[interface{}]interface{}{1: "x"}, destType: reflect.TypeOf(map[int]string{}), expect: map[int]string{1: "x"}},
		{description: "text unmarshaler", src: "10.0.0.1", destType: reflect.TypeOf(net.IP{}), expect: net.ParseIP("10.0.0.1")},
		{description: "bool to int", src: true, destType: reflect.TypeOf(0), expect: 1},
		{description: "unsupported", src: map[string]interface{}{}, destType: reflect.TypeOf(0), expectError: true},
		{description: "invalid number", src: "abc", destType: reflect.TypeOf(0), expectError: true},
	}

	for _, testCase := range testCases {
		converter := New(testCase.options)
		actual, err := converter.Value(testCase.src, testCase.destType)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual.Interface(), testCase.description)
	}
}

func TestConverter_ConvertTime(t *testing.T) {
	converter := New(DefaultOptions())
	var ts time.Time
	require.Nil(t, converter.Convert("2024-03-05", &ts))
	assert.True(t, ts.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	require.Nil(t, converter.Convert("05/03/2024", &ts, WithTimeLayout("02/01/2006")))
	assert.True(t, ts.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	require.Nil(t, converter.Convert(int64(1700000000), &ts))
	assert.Equal(t, int64(1700000000), ts.Unix())

	assert.NotNil(t, converter.Convert(true, &ts))
}

func TestConverter_RegisterConversion(t *testing.T) {
	converter := New(DefaultOptions())
	converter.RegisterConversion(reflect.TypeOf(""), reflect.TypeOf([]string{}), func(src interface{}, dest interface{}) error {
		*dest.(*[]string) = strings.Split(src.(string), ",")
		return nil
	})
	var items []string
	require.Nil(t, converter.Convert("a,b,c", &items))
	assert.Equal(t, []string{"a", "b", "c"}, items)
}

func TestConverter_ConvertInvalidDestination(t *testing.T) {
	converter := New(DefaultOptions())
	assert.NotNil(t, converter.Convert(1, nil))
	var value int
	assert.NotNil(t, converter.Convert(1, value))
	var nilPtr *int
	assert.NotNil(t, converter.Convert(1, nilPtr))
}

func TestAsMap(t *testing.T) {
	type Point struct {
		X, Y  int
		label string
	}
	var testCases = []struct {
		description string
		value       interface{}
		expect      map[string]interface{}
	}{
		{description: "nil", value: nil, expect: map[string]interface{}{}},
		{description: "map", value: map[string]interface{}{"a": 1}, expect: map[string]interface{}{"a": 1}},
		{description: "typed map", value: map[string]string{"a": "b"}, expect: map[string]interface{}{"a": "b"}},
		{description: "struct", value: Point{X: 1, Y: 2}, expect: map[string]interface{}{"X": 1, "Y": 2}},
		{description: "struct pointer", value: &Point{X: 3}, expect: map[string]interface{}{"X": 3, "Y": 0}},
		{description: "nil struct pointer", value: (*Point)(nil), expect: map[string]interface{}{}},
		{description: "sequence", value: []interface{}{"a", "b"}, expect: map[string]interface{}{"0": "a", "1": "b"}},
		{description: "scalar", value: "x", expect: map[string]interface{}{"0": "x"}},
	}
	for _, testCase := range testCases {
		actual, err := AsMap(testCase.value)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_ConvertCopiesContainers(t *testing.T) {
	converter := New(DefaultOptions())
	src := map[string]interface{}{"items": []interface{}{map[string]interface{}{"a": 1}}, "raw": []byte("ab")}
	var dest map[string]interface{}
	require.Nil(t, converter.Convert(src, &dest))
	assert.Equal(t, src, dest)

	dest["items"].([]interface{})[0].(map[string]interface{})["a"] = 2
	dest["raw"].([]byte)[0] = 'x'
	assert.Equal(t, 1, src["items"].([]interface{})[0].(map[string]interface{})["a"])
	assert.Equal(t, []byte("ab"), src["raw"])

	var empty map[string]int
	require.Nil(t, converter.Convert(map[string]int(nil), &empty))
	assert.Nil(t, empty)
}

func intPtr(i int) *int {
	return &i
}
