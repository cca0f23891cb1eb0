package validation

import (
	"reflect"
	"strconv"
)

// ApplyDefaults fills zero-valued fields of the struct pointed to by v with
// the value of their `default` tag. Pointer fields and fields already set are
// left alone, so a partial patch never picks up defaults.
func ApplyDefaults(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			ApplyDefaults(fv.Addr().Interface())
			continue
		}
		def, ok := sf.Tag.Lookup("default")
		if !ok || !fv.IsZero() {
			continue
		}
		setFromString(fv, def)
	}
}

func setFromString(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			fv.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			fv.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(f)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			fv.SetBool(b)
		}
	}
}
