package conv

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	ftime "github.com/viant/hydrator/format/time"
	"github.com/viant/hydrator/visitor"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// ConversionFunc defines a custom conversion function, dest is a pointer to destination type
type ConversionFunc func(src interface{}, dest interface{}) error

type typeKey struct {
	srcType  reflect.Type
	destType reflect.Type
}

// Converter provides type conversion functionality
type Converter struct {
	options       Options
	customConvMap sync.Map // map[typeKey]ConversionFunc
}

// New creates a converter with the provided options
func New(options Options) *Converter {
	return &Converter{options: options}
}

// RegisterConversion registers a custom conversion function between source and destination types
func (c *Converter) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) {
	c.customConvMap.Store(typeKey{srcType, destType}, fn)
}

// Convert converts the source value into dest, dest has to be a non nil pointer
func (c *Converter) Convert(src interface{}, dest interface{}, opts ...Option) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("destination must be a non nil pointer, got %T", dest)
	}
	options := &convertOptions{timeLayout: c.options.TimeLayout}
	for _, opt := range opts {
		opt(options)
	}
	return c.convert(src, destValue.Elem(), options)
}

// Value converts the source into a new value of dest type
func (c *Converter) Value(src interface{}, destType reflect.Type, opts ...Option) (reflect.Value, error) {
	ptr := reflect.New(destType)
	if err := c.Convert(src, ptr.Interface(), opts...); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

func (c *Converter) convert(src interface{}, dest reflect.Value, options *convertOptions) error {
	destType := dest.Type()
	if src == nil {
		dest.Set(reflect.Zero(destType))
		return nil
	}
	srcValue := reflect.ValueOf(src)
	srcType := srcValue.Type()
	if v, ok := c.customConvMap.Load(typeKey{srcType, destType}); ok {
		return v.(ConversionFunc)(src, dest.Addr().Interface())
	}
	if srcType.AssignableTo(destType) {
		copied, err := c.copyContainer(srcValue, options)
		if err != nil {
			return err
		}
		dest.Set(copied)
		return nil
	}
	if srcType.Kind() == reflect.Ptr {
		if srcValue.IsNil() {
			dest.Set(reflect.Zero(destType))
			return nil
		}
		return c.convert(srcValue.Elem().Interface(), dest, options)
	}
	if destType.Kind() == reflect.Ptr {
		item := reflect.New(destType.Elem())
		if err := c.convert(src, item.Elem(), options); err != nil {
			return err
		}
		dest.Set(item)
		return nil
	}
	if destType == timeType {
		return c.convertToTime(dest, srcValue, options)
	}
	if text, ok := src.(string); ok && reflect.PointerTo(destType).Implements(textUnmarshalerType) {
		return dest.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
	}
	switch destType.Kind() {
	case reflect.String:
		return c.convertToString(dest, srcValue)
	case reflect.Bool:
		return c.convertToBool(dest, srcValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.convertToInt(dest, srcValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.convertToUint(dest, srcValue)
	case reflect.Float32, reflect.Float64:
		return c.convertToFloat(dest, srcValue)
	case reflect.Slice:
		return c.convertToSlice(dest, src, options)
	case reflect.Map:
		return c.convertToMap(dest, src, options)
	}
	if srcType.ConvertibleTo(destType) {
		dest.Set(srcValue.Convert(destType))
		return nil
	}
	return fmt.Errorf("unsupported conversion: %v to %v", srcType, destType)
}

// copyContainer returns a deep copy of map and slice values, other values are returned as is
func (c *Converter) copyContainer(src reflect.Value, options *convertOptions) (reflect.Value, error) {
	switch src.Kind() {
	case reflect.Map:
		if src.IsNil() {
			return src, nil
		}
		result := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			item := reflect.New(src.Type().Elem()).Elem()
			if err := c.convert(iter.Value().Interface(), item, options); err != nil {
				return reflect.Value{}, fmt.Errorf("failed to copy map value %v: %w", iter.Key(), err)
			}
			result.SetMapIndex(iter.Key(), item)
		}
		return result, nil
	case reflect.Slice:
		if src.IsNil() {
			return src, nil
		}
		result := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		if src.Type().Elem().Kind() == reflect.Uint8 {
			reflect.Copy(result, src)
			return result, nil
		}
		for i := 0; i < src.Len(); i++ {
			if err := c.convert(src.Index(i).Interface(), result.Index(i), options); err != nil {
				return reflect.Value{}, fmt.Errorf("failed to copy slice element %d: %w", i, err)
			}
		}
		return result, nil
	}
	return src, nil
}

func (c *Converter) convertToString(dest, srcValue reflect.Value) error {
	var result string
	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Bool:
		result = strconv.FormatBool(srcValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = strconv.FormatInt(srcValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = strconv.FormatUint(srcValue.Uint(), 10)
	case reflect.Float32:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 32)
	case reflect.Float64:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 64)
	case reflect.Slice:
		if srcValue.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot convert %v to string", srcValue.Type())
		}
		result = string(srcValue.Bytes())
	default:
		return fmt.Errorf("cannot convert %v to string", srcValue.Type())
	}
	dest.SetString(result)
	return nil
}

func (c *Converter) convertToBool(dest, srcValue reflect.Value) error {
	var result bool
	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float() != 0
	case reflect.String:
		var err error
		if result, err = strconv.ParseBool(strings.TrimSpace(srcValue.String())); err != nil {
			f, fErr := strconv.ParseFloat(strings.TrimSpace(srcValue.String()), 64)
			if fErr != nil {
				return fmt.Errorf("cannot convert %q to bool: %w", srcValue.String(), err)
			}
			result = f != 0
		}
	default:
		return fmt.Errorf("cannot convert %v to bool", srcValue.Type())
	}
	dest.SetBool(result)
	return nil
}

func (c *Converter) convertToInt(dest, srcValue reflect.Value) error {
	var result int64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if srcValue.Uint() > math.MaxInt64 {
			return fmt.Errorf("value %v overflows %v", srcValue.Uint(), dest.Type())
		}
		result = int64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		f, err := c.integral(srcValue.Float())
		if err != nil {
			return err
		}
		result = int64(f)
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		var err error
		if strings.ContainsAny(text, ".eE") && !strings.HasPrefix(text, "0x") {
			var f float64
			if f, err = strconv.ParseFloat(text, 64); err == nil {
				f, err = c.integral(f)
			}
			result = int64(f)
		} else {
			result, err = strconv.ParseInt(text, 0, 64)
		}
		if err != nil {
			return fmt.Errorf("cannot convert %q to %v: %w", srcValue.String(), dest.Type(), err)
		}
	default:
		return fmt.Errorf("cannot convert %v to %v", srcValue.Type(), dest.Type())
	}
	if dest.OverflowInt(result) {
		return fmt.Errorf("value %v overflows %v", result, dest.Type())
	}
	dest.SetInt(result)
	return nil
}

func (c *Converter) convertToUint(dest, srcValue reflect.Value) error {
	var result uint64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return fmt.Errorf("cannot convert negative value %d to %v", v, dest.Type())
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		f, err := c.integral(srcValue.Float())
		if err != nil {
			return err
		}
		if f < 0 {
			return fmt.Errorf("cannot convert negative value %v to %v", f, dest.Type())
		}
		result = uint64(f)
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		var err error
		if result, err = strconv.ParseUint(text, 0, 64); err != nil {
			return fmt.Errorf("cannot convert %q to %v: %w", srcValue.String(), dest.Type(), err)
		}
	default:
		return fmt.Errorf("cannot convert %v to %v", srcValue.Type(), dest.Type())
	}
	if dest.OverflowUint(result) {
		return fmt.Errorf("value %v overflows %v", result, dest.Type())
	}
	dest.SetUint(result)
	return nil
}

func (c *Converter) convertToFloat(dest, srcValue reflect.Value) error {
	var result float64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		var err error
		if result, err = strconv.ParseFloat(strings.TrimSpace(srcValue.String()), 64); err != nil {
			return fmt.Errorf("cannot convert %q to %v: %w", srcValue.String(), dest.Type(), err)
		}
	default:
		return fmt.Errorf("cannot convert %v to %v", srcValue.Type(), dest.Type())
	}
	dest.SetFloat(result)
	return nil
}

func (c *Converter) integral(f float64) (float64, error) {
	if c.options.StrictNumbers && f != math.Trunc(f) {
		return 0, fmt.Errorf("cannot convert fractional value %v to integer", f)
	}
	return math.Trunc(f), nil
}

func (c *Converter) convertToTime(dest, srcValue reflect.Value, options *convertOptions) error {
	var ts time.Time
	switch srcValue.Kind() {
	case reflect.String:
		var err error
		if ts, err = ftime.Parse(options.timeLayout, srcValue.String()); err != nil {
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ts = unixTime(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ts = unixTime(int64(srcValue.Uint()))
	case reflect.Float32, reflect.Float64:
		seconds, fraction := math.Modf(srcValue.Float())
		ts = time.Unix(int64(seconds), int64(fraction*1e9)).UTC()
	default:
		return fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
	}
	dest.Set(reflect.ValueOf(ts))
	return nil
}

func unixTime(value int64) time.Time {
	if value > 1e10 || value < -1e10 { //nanoseconds
		return time.Unix(0, value).UTC()
	}
	return time.Unix(value, 0).UTC()
}

func (c *Converter) convertToSlice(dest reflect.Value, src interface{}, options *convertOptions) error {
	destType := dest.Type()
	if text, ok := src.(string); ok && destType.Elem().Kind() == reflect.Uint8 {
		dest.SetBytes([]byte(text))
		return nil
	}
	if !visitor.IsSequence(src) {
		slice := reflect.MakeSlice(destType, 1, 1)
		if err := c.convert(src, slice.Index(0), options); err != nil {
			return err
		}
		dest.Set(slice)
		return nil
	}
	visit, err := visitor.SliceOf(src)
	if err != nil {
		return err
	}
	slice := reflect.MakeSlice(destType, visitor.Len(src), visitor.Len(src))
	err = visit(func(index int, element interface{}) (bool, error) {
		if err := c.convert(element, slice.Index(index), options); err != nil {
			return false, fmt.Errorf("failed to convert slice element %d: %w", index, err)
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	dest.Set(slice)
	return nil
}

func (c *Converter) convertToMap(dest reflect.Value, src interface{}, options *convertOptions) error {
	destType := dest.Type()
	visit, err := visitor.MapOf(src)
	if err != nil {
		return fmt.Errorf("cannot convert %T to %v: %w", src, destType, err)
	}
	aMap := reflect.MakeMap(destType)
	err = visit(func(key string, element interface{}) (bool, error) {
		mapKey := reflect.New(destType.Key()).Elem()
		if err := c.convert(key, mapKey, options); err != nil {
			return false, fmt.Errorf("failed to convert map key %v: %w", key, err)
		}
		mapValue := reflect.New(destType.Elem()).Elem()
		if err := c.convert(element, mapValue, options); err != nil {
			return false, fmt.Errorf("failed to convert map value %v: %w", key, err)
		}
		aMap.SetMapIndex(mapKey, mapValue)
		return true, nil
	})
	if err != nil {
		return err
	}
	dest.Set(aMap)
	return nil
}
