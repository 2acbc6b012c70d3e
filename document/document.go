package document

import (
	"fmt"

	"github.com/francoispqt/gojay"
	"github.com/viant/hydrator/visitor"
	"gopkg.in/yaml.v3"
)

// Document represents a decoded document object
type Document map[string]interface{}

// UnmarshalJSONObject decodes an object member
func (d Document) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var value interface{}
	if err := dec.Interface(&value); err != nil {
		return err
	}
	d[key] = value
	return nil
}

// NKeys returns 0 to decode all keys
func (d Document) NKeys() int {
	return 0
}

// FromJSON decodes JSON object
func FromJSON(data []byte) (Document, error) {
	doc := Document{}
	if err := gojay.UnmarshalJSONObject(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode json document: %w", err)
	}
	return doc, nil
}

// FromYAML decodes YAML mapping, nested mappings are returned as map[string]interface{}
func FromYAML(data []byte) (Document, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode yaml document: %w", err)
	}
	doc := make(Document, len(raw))
	for key, value := range raw {
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		doc[key] = normalized
	}
	return doc, nil
}

func normalize(value interface{}) (interface{}, error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		for key, item := range actual {
			normalized, err := normalize(item)
			if err != nil {
				return nil, err
			}
			actual[key] = normalized
		}
		return actual, nil
	case map[interface{}]interface{}:
		visit, err := visitor.MapOf(actual)
		if err != nil {
			return nil, err
		}
		result := make(map[string]interface{}, len(actual))
		err = visit(func(key string, item interface{}) (bool, error) {
			normalized, err := normalize(item)
			if err != nil {
				return false, err
			}
			result[key] = normalized
			return true, nil
		})
		return result, err
	case []interface{}:
		for i, item := range actual {
			normalized, err := normalize(item)
			if err != nil {
				return nil, err
			}
			actual[i] = normalized
		}
		return actual, nil
	}
	return value, nil
}
