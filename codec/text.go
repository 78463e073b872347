package codec

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
)

const (
	// maxNestingDepth bounds container nesting in decoded MessagePack.
	maxNestingDepth = 1000
	// maxTextDepth bounds the checkText walk; pointers and containers
	// each count as one level.
	maxTextDepth = 2 * maxNestingDepth
)

var (
	errInvalidUTF8  = errors.New("invalid UTF-8 in text value")
	errTrailingData = errors.New("trailing data after value")
	errTooDeep      = fmt.Errorf("value nesting exceeds %d levels", maxTextDepth)
)

// checkText walks v and rejects any string that is not valid UTF-8.
// Byte slices and arrays are binary and are not inspected.
func checkText(v reflect.Value) error {
	return walkText(v, 0)
}

func walkText(v reflect.Value, depth int) error {
	if depth > maxTextDepth {
		return errTooDeep
	}

	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return errInvalidUTF8
		}

	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}

		return walkText(v.Elem(), depth+1)

	case reflect.Interface:
		// The dynamic value is never itself an interface.
		if v.IsNil() {
			return nil
		}

		return walkText(v.Elem(), depth)

	case reflect.Struct:
		t := v.Type()
		for i := range v.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := walkText(v.Field(i), depth+1); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}

	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return nil
		}
		for i := range v.Len() {
			if err := walkText(v.Index(i), depth+1); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}

	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := walkText(iter.Key(), depth+1); err != nil {
				return fmt.Errorf("map key: %w", err)
			}
			if err := walkText(iter.Value(), depth+1); err != nil {
				return fmt.Errorf("map value: %w", err)
			}
		}

	default:
	}

	return nil
}
