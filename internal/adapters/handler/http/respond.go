package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/domain"
)

const maxBodyBytes = 1 << 20

var (
	validate = newValidator()

	errEmptyBody = domain.Validation("request body is required")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to its status. Internal errors are logged and replaced
// with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(domain.KindOf(err))
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID(r)),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Message: domain.PublicMessage(err)})
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields,
// then runs struct validation.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &typeErr):
			return domain.Validation("field '%s' has the wrong type", typeErr.Field)
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			return domain.Validation("%s", strings.TrimPrefix(err.Error(), "json: "))
		default:
			return domain.Validation("invalid request body")
		}
	}
	if dec.More() {
		return domain.Validation("request body must contain a single JSON object")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	first := verrs[0]
	field := first.Field()
	switch first.Tag() {
	case "required":
		return domain.Validation("field '%s' is required", field)
	case "email":
		return domain.Validation("field '%s' must be a valid email address", field)
	case "min":
		return domain.Validation("field '%s' must be at least %s", field, first.Param())
	case "max":
		return domain.Validation("field '%s' must be at most %s", field, first.Param())
	case "oneof":
		return domain.Validation("field '%s' must be one of: %s", field, first.Param())
	default:
		return domain.Validation("field '%s' is invalid", field)
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.Validation("invalid %s", name)
	}
	return id, nil
}

// intQuery returns def when the parameter is absent.
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("query parameter '%s' must be an integer", name)
	}
	return n, nil
}
