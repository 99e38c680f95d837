package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/http/response"
)

// EnvelopeVersion is the version of the response envelope.
const EnvelopeVersion = response.Version

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope: {v, success, data} or {v, success, error, code, details}.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 200
	}

	if code < 400 {
		return response.Success(v), nil
	}

	switch e := v.(type) {
	case *APIError:
		return response.Failure(e.Code, e.Message, e.Details), nil
	case error:
		return response.Failure(statusToCode(code), e.Error(), nil), nil
	default:
		return response.Failure(statusToCode(code), "request failed", v), nil
	}
}
