package api

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yakoovad/club-api/internal/schema"
	"github.com/yakoovad/club-api/internal/service"
)

type step[T any] func(echo.Context, *T) *service.Error

// ProcessRequest runs the decoding steps in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...step[T]) *service.Error {
	for _, s := range steps {
		if err := s(e, req); err != nil {
			return err
		}
	}
	return nil
}

// requestParams merges query string values with path parameters. Path
// parameters win on a name clash.
func requestParams(e echo.Context) map[string]string {
	params := make(map[string]string)
	for k, v := range e.QueryParams() {
		if len(v) > 0 {
			params[k] = v[0]
		} else {
			params[k] = ""
		}
	}
	for _, name := range e.ParamNames() {
		params[name] = e.Param(name)
	}
	return params
}

// paramsStep validates the request parameters against the named schema and
// decodes them into the request. Parameters are text, so decoding is weakly typed.
func paramsStep[T any](schemas *schema.Registry, name string) step[T] {
	return func(e echo.Context, req *T) *service.Error {
		params := requestParams(e)
		if err := schemas.Validate(name, params); err != nil {
			return validationError(service.ErrorCodeInvalidParameter, err)
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           req,
		})
		if err != nil {
			return service.NewError(service.ErrorCodeUnspecified, "failed to decode request parameters").WithCause(err)
		}
		if err = dec.Decode(params); err != nil {
			return service.NewError(service.ErrorCodeInvalidParameter, "invalid request parameters").WithCause(err)
		}

		if err = e.Validate(req); err != nil {
			return service.NewError(service.ErrorCodeInvalidParameter, "invalid request parameters").WithCause(err)
		}
		return nil
	}
}

// bodyStep decodes the JSON body, checks it against the named schema and
// decodes it into the request.
func bodyStep[T any](schemas *schema.Registry, name string) step[T] {
	return func(e echo.Context, req *T) *service.Error {
		return decodeBody(e, schemas, name, req)
	}
}

func decodeBody(e echo.Context, schemas *schema.Registry, name string, out any) *service.Error {
	var body map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(e, &body); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "malformed JSON body").WithCause(err)
	}

	if err := schemas.Validate(name, body); err != nil {
		return validationError(service.ErrorCodeInvalidBody, err)
	}

	if err := mapstructure.Decode(body, out); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body").WithCause(err)
	}

	if err := e.Validate(out); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body").
			WithCause(errors.Wrap(err, "request validation failed")).
			WithSchema(expectedSchema(schemas, name))
	}
	return nil
}

func validationError(code service.ErrorCode, err error) *service.Error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return service.NewError(code, "request does not match the "+verr.Schema+" schema").
			WithCause(verr).
			WithSchema(verr.Expected)
	}
	return service.NewError(service.ErrorCodeUnspecified, "request validation failed").WithCause(err)
}

func expectedSchema(schemas *schema.Registry, name string) any {
	if s, ok := schemas.Get(name); ok {
		return s.Expected()
	}
	return nil
}
