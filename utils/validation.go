package utils

import (
    "fmt"
    "reflect"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/klassmann/cpfcnpj"
)

var validate *validator.Validate

var (
    cnpjRegex = regexp.MustCompile(`^[0-9]{2}\.?[0-9]{3}\.?[0-9]{3}/?[0-9]{4}-?[0-9]{2}$`)
    cpfRegex  = regexp.MustCompile(`^[0-9]{3}\.?[0-9]{3}\.?[0-9]{3}-?[0-9]{2}$`)
    cepRegex  = regexp.MustCompile(`^[0-9]{5}-?[0-9]{3}$`)
    rgRegex   = regexp.MustCompile(`^[0-9]{2}\.[0-9]{3}\.[0-9]{3}-[0-9]{1}$`)
)

// Checksum validation is pluggable: the digit-weighted algorithms belong to
// the identity-validation collaborator, so tests may swap these out.
var (
    ValidCNPJ = func(v string) bool { c := cpfcnpj.NewCNPJ(v); return c.IsValid() }
    ValidCPF  = func(v string) bool { c := cpfcnpj.NewCPF(v); return c.IsValid() }
)

func init() {
    validate = validator.New()

    // Report fields by their json names so error maps match the wire shape.
    validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
        name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })

    validate.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
        v := fl.Field().String()
        return cnpjRegex.MatchString(v) && ValidCNPJ(v)
    })
    validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
        v := fl.Field().String()
        return cpfRegex.MatchString(v) && ValidCPF(v)
    })
    validate.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
        return cepRegex.MatchString(fl.Field().String())
    })
    validate.RegisterValidation("rg", func(fl validator.FieldLevel) bool {
        return rgRegex.MatchString(fl.Field().String())
    })
    // isodate accepts the form wire format (YYYY-MM-DD) and the canonical
    // RFC 3339 instant, so normalized values re-validate cleanly.
    validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
        v := fl.Field().String()
        if _, err := time.Parse("2006-01-02", v); err == nil {
            return true
        }
        _, err := time.Parse(time.RFC3339, v)
        return err == nil
    })
    validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
        v := fl.Field().String()
        if v == "" {
            return false
        }
        for _, r := range v {
            if r < '0' || r > '9' {
                return false
            }
        }
        return true
    })
    validate.RegisterValidation("nonnegint", func(fl validator.FieldLevel) bool {
        n, err := strconv.Atoi(fl.Field().String())
        return err == nil && n >= 0
    })
    validate.RegisterValidation("posint", func(fl validator.FieldLevel) bool {
        n, err := strconv.Atoi(fl.Field().String())
        return err == nil && n >= 1
    })
}

func ValidateStruct(s interface{}) error {
    return validate.Struct(s)
}

// FormatValidationError flattens validator errors into a field -> message
// map. Every failing field is reported; validation is never fail-fast.
func FormatValidationError(err error) map[string]string {
    errors := make(map[string]string)

    if validationErrors, ok := err.(validator.ValidationErrors); ok {
        for _, fieldError := range validationErrors {
            field := fieldError.Field()
            switch fieldError.Tag() {
            case "required":
                errors[field] = fmt.Sprintf("%s is required", field)
            case "email":
                errors[field] = "Invalid email format"
            case "url":
                errors[field] = "Invalid URL format"
            case "min":
                errors[field] = fmt.Sprintf("%s must have at least %s characters", field, fieldError.Param())
            case "len":
                errors[field] = fmt.Sprintf("%s must be exactly %s characters", field, fieldError.Param())
            case "eq":
                errors[field] = "Terms must be accepted"
            case "cnpj":
                errors[field] = "Invalid CNPJ"
            case "cpf":
                errors[field] = "Invalid CPF"
            case "cep":
                errors[field] = "Invalid postal code format"
            case "rg":
                errors[field] = "Invalid RG format"
            case "isodate":
                errors[field] = "Invalid date format"
            case "digits":
                errors[field] = fmt.Sprintf("%s must be numeric", field)
            case "nonnegint":
                errors[field] = fmt.Sprintf("%s must be a non-negative integer", field)
            case "posint":
                errors[field] = fmt.Sprintf("%s must be a positive integer", field)
            default:
                errors[field] = fmt.Sprintf("%s is invalid", field)
            }
        }
    }

    return errors
}

func SanitizeString(input string) string {
    return strings.TrimSpace(input)
}
