package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"docit/internal/config"
)

// MaxBodyBytes is the largest request body accepted. The editor save is
// the biggest payload: MaxContentBytes of HTML, escaped inside a JSON
// string.
const MaxBodyBytes = 2*config.MaxContentBytes + 4<<10

// ErrEmptyBody is returned by ParseJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// ParseJSON decodes the request body into dest. Unknown fields are
// ignored so older clients keep working; the services validate the rest.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
