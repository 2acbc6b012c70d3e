package format

import (
	"fmt"
	"reflect"
	"strings"

	ftime "github.com/viant/hydrator/format/time"
	"github.com/viant/parsly"
)

const (
	//TagName defines hydration tag name
	TagName = "hydrate"
	//FallbackTagName defines tag used for a key name when hydrate tag does not define one
	FallbackTagName = "json"
)

// Tag represents hydration field tag
type Tag struct {
	Name       string //external data source key
	DateFormat string
	TimeLayout string
	Ignore     bool
}

// HasName returns true if tag defines external key name
func (t *Tag) HasName() bool {
	return t != nil && t.Name != "" && t.Name != "-"
}

func (t *Tag) update(key string, value string) error {
	switch strings.ToLower(key) {
	case "name", "key":
		t.Name = value
	case "dateformat":
		t.DateFormat = value
		t.TimeLayout = ftime.DateFormatToTimeLayout(value)
	case "timelayout", "layout":
		t.TimeLayout = value
	case "ignore", "transient":
		t.Ignore = true
	default:
		return fmt.Errorf("unknown %v tag key: %v", TagName, key)
	}
	return nil
}

// Parse parses hydrate tag, the first bare value is treated as the key name, i.e. `hydrate:"years,timeLayout=2006"`
func Parse(tag reflect.StructTag) (*Tag, error) {
	ret := &Tag{}
	encoded, ok := tag.Lookup(TagName)
	if ok {
		if encoded == "-" {
			ret.Ignore = true
			return ret, nil
		}
		cursor := parsly.NewCursor("", []byte(encoded), 0)
		for i := 0; cursor.Pos < len(cursor.Input); i++ {
			key, value := matchPair(cursor)
			if key == "" {
				if value == "" {
					continue
				}
				if i > 0 {
					if value == "-" || strings.EqualFold(value, "ignore") {
						ret.Ignore = true
						continue
					}
					return nil, fmt.Errorf("invalid %v tag fragment: %q", TagName, value)
				}
				if value == "-" {
					ret.Ignore = true
					continue
				}
				ret.Name = value
				continue
			}
			if err := ret.update(key, value); err != nil {
				return nil, err
			}
		}
	}
	if ret.Name == "" {
		if name := fallbackName(tag); name != "" {
			ret.Name = name
		}
	}
	return ret, nil
}

func fallbackName(tag reflect.StructTag) string {
	encoded := tag.Get(FallbackTagName)
	if index := strings.Index(encoded, ","); index != -1 {
		encoded = encoded[:index]
	}
	if encoded == "-" {
		return ""
	}
	return encoded
}
