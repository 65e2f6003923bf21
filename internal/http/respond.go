package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cinelog/movie-rating-api/internal/domain"
)

const maxRequestBody = 1 << 20 // 1 MiB

// All resource endpoints share the envelope: success wraps the payload
// under "data", failure carries the HTTP status code and a message.
type successEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type failureEnvelope struct {
	Status string      `json:"status"`
	Error  errorDetail `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (s *Server) respondSuccess(w http.ResponseWriter, status int, data interface{}) {
	s.respondJSON(w, status, successEnvelope{Status: "success", Data: data})
}

func (s *Server) respondFailure(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, failureEnvelope{
		Status: "failure",
		Error:  errorDetail{Code: status, Message: message},
	})
}

// respondServiceError renders typed domain failures verbatim and hides
// everything else behind a generic 500; the detail goes to the log only.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domainErr, ok := domain.AsError(err); ok {
		s.respondFailure(w, domainErr.Code, domainErr.Message)
		return
	}
	s.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unhandled service error")
	s.respondFailure(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondFailure(w, http.StatusUnprocessableEntity, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondFailure(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondFailure(w, http.StatusUnprocessableEntity, "Request body cannot be empty")
	default:
		s.respondFailure(w, http.StatusUnprocessableEntity, "Unable to parse request body")
	}
}
