package hydrator

import "github.com/viant/hydrator/document"

// FromJSON returns a new T populated from JSON object
func FromJSON[T any](data []byte, opts ...Option) (*T, error) {
	doc, err := document.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return Hydrate[T](doc, opts...)
}

// FromYAML returns a new T populated from YAML mapping
func FromYAML[T any](data []byte, opts ...Option) (*T, error) {
	doc, err := document.FromYAML(data)
	if err != nil {
		return nil, err
	}
	return Hydrate[T](doc, opts...)
}
