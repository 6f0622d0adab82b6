package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/domain"
)

var (
	// letras (cualquier alfabeto) y espacios
	alphaSpaceRe = regexp.MustCompile(`^[\p{L} ]+$`)
	// móvil egipcio: 01[0125] + 8 dígitos, con prefijo +20/0020 opcional
	egPhoneRe = regexp.MustCompile(`^(\+20|0020)?01[0125][0-9]{8}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según las etiquetas json/query para los mensajes de error.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpaceRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("egphone", func(fl validator.FieldLevel) bool {
		return egPhoneRe.MatchString(fl.Field().String())
	})
	return v
}

// bindBody parsea el JSON del cuerpo y valida las etiquetas validate.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("invalid request body")
	}
	return validateStruct(out)
}

// bindQuery parsea los parámetros de query y valida las etiquetas validate.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validation("invalid query parameters")
	}
	return validateStruct(out)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return domain.Validation("%s: %s", e.Field(), validationMessage(e))
	}
	return domain.Validation("invalid input")
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "alphaspace":
		return "must contain only letters and spaces"
	case "egphone":
		return "must be a valid mobile phone number"
	case "min":
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "must contain at least " + e.Param() + " element(s)"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	}
	return "invalid value"
}
