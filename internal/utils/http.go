package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBodyBytes caps request bodies read by ReadJSON.
const MaxJSONBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("empty request body")
	ErrTrailingData = errors.New("unexpected data after JSON object")
)

// WriteJSON writes data as a JSON response with the given status. Responses
// may carry session tokens, so they are marked no-store. A marshal failure
// becomes a plain 500.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(payload)
}

// ReadJSON decodes exactly one JSON value from the request body into dst.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))

	switch err := dec.Decode(dst); {
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case err != nil:
		return fmt.Errorf("error decoding JSON body: %w", err)
	}

	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
