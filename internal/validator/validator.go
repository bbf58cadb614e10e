package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// gradeLetters are the accepted values of the "grade" tag.
var gradeLetters = map[string]struct{}{
	"O": {}, "A+": {}, "A": {}, "B+": {}, "B": {}, "P": {}, "F": {},
}

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("grade", func(fl govalidator.FieldLevel) bool {
		_, ok := gradeLetters[strings.ToUpper(strings.TrimSpace(fl.Field().String()))]
		return ok
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterTranslation("grade", trans,
		func(ut ut.Translator) error {
			return ut.Add("grade", "{0} must be one of O, A+, A, B+, B, P or F", true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T("grade", fe.Field())
			return t
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fe.Namespace()
			if i := strings.Index(key, "."); i >= 0 {
				key = key[i+1:]
			}
			if trans != nil {
				fields[key] = fe.Translate(trans)
			} else {
				fields[key] = fe.Error()
			}
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// BindQuery binds and validates query parameters into dst.
func BindQuery(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindQuery(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
