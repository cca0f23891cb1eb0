// Package validation checks request forms before they reach a service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ariebrainware/basis-data-dental/odontogram"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Errors maps a JSON field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

var phonePattern = regexp.MustCompile(`^[0-9+\-\s]{6,20}$`)

var (
	validate *validator.Validate
	initOnce sync.Once
)

// custom tags shared by our validator and gin's binding engine
var customTags = map[string]validator.Func{
	"phone":     isPhone,
	"date":      isDate,
	"hhmm":      isHHMM,
	"fdi":       isToothLabel,
	"tooth":     isTooth,
	"surface":   isSurface,
	"condition": isCondition,
	"ref":       isRef,
}

func instance() *validator.Validate {
	initOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		for tag, fn := range customTags {
			// registration only fails on an empty tag
			_ = validate.RegisterValidation(tag, fn)
		}
	})
	return validate
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// RegisterGin installs the custom tags on gin's default validator so they can
// be used in `binding` tags too. Field errors are reported by JSON name.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	v.RegisterTagNameFunc(jsonName)
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate applies the `default` tags of v and checks its `validate` tags.
// It returns nil when v is valid.
func Validate(v interface{}) Errors {
	ApplyDefaults(v)
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"_": err.Error()}
	}
	return fromFieldErrors(verrs)
}

// FromBinding converts the error of a gin ShouldBind call. ok is false when
// err is not a field validation failure, e.g. malformed JSON.
func FromBinding(err error) (Errors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	return fromFieldErrors(verrs), true
}

func fromFieldErrors(verrs validator.ValidationErrors) Errors {
	out := Errors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// Var checks a single value against a tag expression, e.g. Var("09:30", "hhmm").
func Var(value interface{}, tag string) bool {
	return instance().Var(value, tag) == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be 6 to 20 digits, spaces, + or -"
	case "date":
		return "must be a date formatted YYYY-MM-DD"
	case "hhmm":
		return "must be a time formatted HH:MM"
	case "fdi", "tooth":
		return "must be an adult FDI tooth number"
	case "surface":
		return "must be one of " + joinSurfaces()
	case "condition":
		return "is not a known condition"
	case "uuid", "ref":
		return "must be a valid id"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if isText(fe.Kind()) {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isText(fe.Kind()) {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "hexcolor":
		return "must be a hex color"
	}
	return "is invalid"
}

func isText(k reflect.Kind) bool {
	return k == reflect.String
}

func joinSurfaces() string {
	names := make([]string, 0, len(odontogram.Surfaces))
	for _, s := range odontogram.Surfaces {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func isPhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || phonePattern.MatchString(s)
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func isHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func isToothLabel(fl validator.FieldLevel) bool {
	return odontogram.IsValidToothLabel(fl.Field().String())
}

func isTooth(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return odontogram.IsValidTooth(int(fl.Field().Int()))
	case reflect.String:
		_, err := odontogram.ParseTooth(fl.Field().String())
		return err == nil
	}
	return false
}

func isSurface(fl validator.FieldLevel) bool {
	return odontogram.Surface(fl.Field().String()).Valid()
}

func isCondition(fl validator.FieldLevel) bool {
	return odontogram.ConditionType(fl.Field().String()).Valid()
}

// isRef accepts a row id or the empty string, which clears an optional link.
func isRef(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || uuid.Validate(s) == nil
}
