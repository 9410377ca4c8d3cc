package errors

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	transMu sync.RWMutex
	trans   ut.Translator
)

func translator() ut.Translator {
	transMu.RLock()
	defer transMu.RUnlock()
	return trans
}

// RegisterValidator installs English messages on v and reports fields by
// their JSON or query names. Call it once at startup with gin's validator engine.
func RegisterValidator(v *validator.Validate) error {
	english := en.New()
	uni := ut.New(english, english)
	t, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(v, t); err != nil {
		return fmt.Errorf("failed to register validation translations: %w", err)
	}
	v.RegisterTagNameFunc(jsonFieldName)

	transMu.Lock()
	trans = t
	transMu.Unlock()
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
