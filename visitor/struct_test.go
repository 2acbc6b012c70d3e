package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructOf(t *testing.T) {
	type Employee struct {
		ID      int
		Name    string
		Company string
		salary  int
	}

	emp := &Employee{ID: 1, Name: "John Doe", Company: "Viant", salary: 10}
	for _, value := range []interface{}{emp, *emp} {
		visit, err := StructOf(value)
		if !assert.Nil(t, err) {
			return
		}
		actual, err := visit.Collect()
		assert.Nil(t, err)
		assert.EqualValues(t, map[string]interface{}{"ID": 1, "Name": "John Doe", "Company": "Viant"}, actual)
	}
	_, err := StructOf(10)
	assert.NotNil(t, err)
}
