// Package validation envuelve go-playground/validator y traduce sus errores a
// domain.ValidationError con mensajes por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// Tags propios registrados en New.
const (
	// TagDateTime valida strings que ParseDateTime acepta.
	TagDateTime = "datetime_any"
	// TagDecimal valida strings que shopspring/decimal interpreta (incluye exponente: 1e3).
	TagDecimal = "decimal"
	// TagIntDigits limita los dígitos de la parte entera, redondeando a 2 decimales (decimal_digits=10 para NUMERIC(12,2)).
	TagIntDigits = "decimal_digits"
)

// Formatos aceptados para fechas de entrada, en orden de prueba.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Messages mensajes por "campo.tag" (nombre JSON del campo). Lo no listado usa el mensaje genérico del tag.
type Messages map[string]string

// Validator valida structs con tags `validate` y nombra los campos por su tag `json`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con el tag datetime_any registrado.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(TagDateTime, func(fl validator.FieldLevel) bool {
		_, ok := ParseDateTime(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation(TagDecimal, func(fl validator.FieldLevel) bool {
		_, ok := ParseDecimal(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation(TagIntDigits, func(fl validator.FieldLevel) bool {
		d, ok := ParseDecimal(fl.Field().String())
		if !ok {
			// lo reporta TagDecimal
			return true
		}
		digits, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return d.Round(2).Abs().LessThan(decimal.New(1, int32(digits)))
	})
	return &Validator{v: v}
}

// Struct valida s y devuelve *domain.ValidationError con una violación por campo, o nil.
func (val *Validator) Struct(s any, messages Messages) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validar %T: %w", s, err)
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		field := fieldPath(fe)
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = defaultMessage(fe)
		}
		out.Add(field, msg)
	}
	return out.OrNil()
}

// fieldPath quita el nombre del struct raíz del namespace ("invoiceInput.amount" -> "amount").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "este campo es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "numeric":
		return "debe ser numérico"
	case "number":
		return "debe ser un número entero"
	case TagDateTime:
		return "debe ser una fecha válida (YYYY-MM-DD)"
	case TagDecimal:
		return "debe ser un número"
	case TagIntDigits:
		return fmt.Sprintf("debe tener como máximo %s dígitos enteros", fe.Param())
	default:
		return "valor inválido"
	}
}

// maxDecimalExponent acota el exponente aceptado: 1e999999999 obligaría a materializar el número completo.
const maxDecimalExponent = 64

// ParseDecimal interpreta s como decimal (acepta exponente) con exponente dentro de ±maxDecimalExponent.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseDateTime interpreta s con los formatos aceptados por la API.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
