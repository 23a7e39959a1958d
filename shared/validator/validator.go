package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	custom := map[string]val.Func{
		"mimetypes":   fileHasMimetype,
		"maxfilesize": fileFitsSize,
		"dateonly":    isDateOnly,
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

func uploadedFile(field val.FieldLevel) (multipart.FileHeader, bool) {
	file, ok := field.Field().Interface().(multipart.FileHeader)

	return file, ok
}

// fileHasMimetype checks the uploaded Content-Type against a space separated list.
func fileHasMimetype(field val.FieldLevel) bool {
	file, ok := uploadedFile(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// fileFitsSize takes its limit in megabytes, fractions allowed.
func fileFitsSize(field val.FieldLevel) bool {
	file, ok := uploadedFile(field)
	if !ok {
		return false
	}

	limit, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= limit*megabyte
}

func isDateOnly(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

// Validate decodes a JSON body into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asBadRequest(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asBadRequest(validate.Var(field, tag))
}

func asBadRequest(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
