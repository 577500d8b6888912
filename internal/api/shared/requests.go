package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/employee-api/internal/domain"
)

// MaxBodyBytes bounds every request body.
const MaxBodyBytes = 1 << 20

// ReadJSONBody reads the request body and checks that it is well-formed JSON.
// An empty body yields nil. A body that does not parse yields a KindUnreadable
// error.
func ReadJSONBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.NewBadRequestError(
				fmt.Sprintf("Request body must not exceed %d bytes", maxErr.Limit), err)
		}
		return nil, domain.NewUnreadableError(err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, domain.NewUnreadableError(errors.New("request body is not valid JSON"))
	}
	return data, nil
}

// DecodeJSON binds well-formed JSON into v. A value that cannot be bound, for
// example a string where a number is expected, yields a KindBadRequest error.
func DecodeJSON(data json.RawMessage, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return domain.NewBadRequestError(domain.MsgInvalidPayload, err)
	}
	return nil
}
