package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceOf(t *testing.T) {
	mySlice := []interface{}{"a", 1, 3.14, true}
	visit, err := SliceOf(mySlice)
	if !assert.Nil(t, err) {
		return
	}
	var clone []interface{}
	err = visit(func(index int, element interface{}) (bool, error) {
		clone = append(clone, element)
		return true, nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, mySlice, clone)

	visit, err = SliceOf([2]int{4, 5})
	if !assert.Nil(t, err) {
		return
	}
	var first interface{}
	err = visit(func(index int, element interface{}) (bool, error) {
		first = element
		return false, nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 4, first)

	_, err = SliceOf("abc")
	assert.NotNil(t, err)
}

func TestIsSequence(t *testing.T) {
	assert.True(t, IsSequence([]string{"a"}))
	assert.True(t, IsSequence([1]int{1}))
	assert.False(t, IsSequence([]byte("abc")))
	assert.False(t, IsSequence(nil))
	assert.Equal(t, 2, Len([]int{1, 2}))
	assert.Equal(t, -1, Len(3))
}
