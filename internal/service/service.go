package service

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"cinelist/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewMovieService, NewCollectionService, NewLiveSearchService)

const (
	reasonNotFound      = "NOT_FOUND"
	reasonInvalid       = "UNPROCESSABLE_ENTITY"
	reasonUpstream      = "UPSTREAM_UNAVAILABLE"
	reasonSessionFailed = "GUEST_SESSION_UNAVAILABLE"
)

var alphanumSpace = regexp.MustCompile(`^[a-zA-Z0-9\s]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// letters, digits and whitespace only
	if err := v.RegisterValidation("alphanumspace", func(fl validator.FieldLevel) bool {
		return alphanumSpace.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateRequest checks the request tags and reports the first violation as 422
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.New(422, reasonInvalid, err.Error())
	}
	return errors.New(422, reasonInvalid, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "alphanumspace":
		return fmt.Sprintf("%s may only contain letters, numbers and spaces", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fromBiz translates domain errors into HTTP-aware kratos errors
func fromBiz(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, biz.ErrMovieNotFound):
		return errors.NotFound(reasonNotFound, "movie not found")
	case stderrors.Is(err, biz.ErrCollectionNotFound):
		return errors.NotFound(reasonNotFound, "collection not found")
	case stderrors.Is(err, biz.ErrInvalidRating):
		return errors.New(422, reasonInvalid, err.Error())
	case stderrors.Is(err, biz.ErrGuestSessionUnavailable):
		return errors.New(502, reasonSessionFailed, err.Error())
	case stderrors.Is(err, biz.ErrUpstream):
		return errors.New(502, reasonUpstream, "movie api unavailable")
	default:
		return errors.InternalServer("INTERNAL", err.Error())
	}
}
