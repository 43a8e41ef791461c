package dtos

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

// RegisterValidations configures v the same way the client-side validator is
// configured. The server calls it on gin's engine so both ends agree.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("register date validation: %w", err)
	}
	return nil
}

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// Validate checks a request against its binding tags before anything is sent.
// It returns FieldErrors on failure.
func Validate(req any) error {
	return Translate(req, engine().Struct(req))
}

// Translate turns validator errors for req into FieldErrors, using each
// field's msg tag when it has one. Other errors pass through.
func Translate(req any, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg := ""
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			msg = sf.Tag.Get("msg")
		}
		if msg == "" {
			msg = "failed the '" + fe.Tag() + "' check"
		}
		out[fe.Field()] = msg
	}
	return out
}
