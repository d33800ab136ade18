package httptransport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/cenkalti/backoff/v4"
)

type errResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorRegistryEntry struct {
	code string
	err  error
}

var errorRegistry []errorRegistryEntry

// RegisterError associates a known error value with a
// machine-readable code, so that it survives a round trip over HTTP:
// the server responds with status 400 and the code, and UnwrapError
// turns the code back into the registered error value on the client.
func RegisterError(code string, err error) {
	errorRegistry = append(errorRegistry, errorRegistryEntry{
		code: code,
		err:  err,
	})
}

// HTTPError writes an error as a JSON response. Registered errors
// become 400s with their code, everything else is a 500.
func HTTPError(w http.ResponseWriter, err error) {
	var resp errResponse
	resp.Message = err.Error()
	status := http.StatusInternalServerError
	for _, merr := range errorRegistry {
		if errors.Is(err, merr.err) {
			status = http.StatusBadRequest
			resp.Code = merr.code
			break
		}
	}

	log.Printf("http error: %v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&resp) // nolint: errcheck, errchkjson
}

// UnwrapError maps a non-200 HTTP response back to an error,
// resurrecting registered errors from their code. Client errors are
// marked permanent so retry loops give up on them immediately.
func UnwrapError(resp *http.Response) error {
	if resp.StatusCode == http.StatusBadRequest && resp.Header.Get("Content-Type") == "application/json" {
		var errResp errResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return errors.New("malformed remote error response")
		}
		for _, merr := range errorRegistry {
			if errResp.Code == merr.code {
				return backoff.Permanent(merr.err)
			}
		}
	}
	err := fmt.Errorf("HTTP status code %d", resp.StatusCode)
	if resp.StatusCode != 429 && resp.StatusCode < 500 {
		err = backoff.Permanent(err)
	}
	return err
}
