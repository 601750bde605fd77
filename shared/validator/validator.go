package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"roombook/shared/failure"
	"slices"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

const bytesPerMB = 1024 * 1024

// registerMimetypeValidation sniffs the uploaded bytes instead of trusting the
// client supplied Content-Type. Params are space separated, e.g. "image/png image/jpeg".
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	detected, err := sniff(&file)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(strings.Fields(field.Param()), detected.Is)
}

func sniff(header *multipart.FileHeader) (*mimetype.MIME, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	return detected, nil
}

// registerFileSizeValidation takes the limit in megabytes, fractions allowed.
func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMB
}

type selfValidator interface {
	Validate() error
}

// registerSelfValidation delegates to the field's own Validate method.
func registerSelfValidation(field val.FieldLevel) bool {
	if v, ok := field.Field().Interface().(selfValidator); ok {
		return v.Validate() == nil
	}

	return false
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	err := validate.RegisterValidation("valid", registerSelfValidation)

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("mimetypes", registerMimetypeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
