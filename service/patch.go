package service

import (
	"reflect"
	"strings"
)

// patchFrom turns a partial update form into a column map: every non-nil
// pointer field is included under its json name, which matches the column
// name in our models. Non-pointer fields are left to the caller.
func patchFrom(form interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	rv := reflect.ValueOf(form)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return out
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := strings.SplitN(rt.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = fv.Elem().Interface()
	}
	return out
}
