package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// ErrorHandler writes the response for a request that failed validation.
type ErrorHandler func(c echo.Context, status int, err error) error

// RequestValidator checks path, query and body of every request described in
// doc. Requests the document does not describe (health, docs) pass through.
func RequestValidator(doc *openapi3.T, onError ErrorHandler) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         false,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if vErr := openapi3filter.ValidateRequest(req.Context(), input); vErr != nil {
				return onError(c, http.StatusBadRequest, vErr)
			}
			return next(c)
		}
	}, nil
}
