package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every API reply.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with an explicit status code. The
// Content-Type header goes out before WriteHeader or it is lost.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func success(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, true, message, data, nil)
}

func failure(w http.ResponseWriter, code int, message string, errors any) {
	ResponseJSON(w, code, false, message, nil, errors)
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusCreated, message, data)
}

// ResponseNoContent answers a delete; 204 carries no body.
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ResponseBadRequest: errors is usually a field -> message map.
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	failure(w, http.StatusBadRequest, message, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	failure(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	failure(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	failure(w, http.StatusNotFound, message, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	failure(w, http.StatusTooManyRequests, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	failure(w, http.StatusInternalServerError, message, nil)
}

func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	failure(w, http.StatusServiceUnavailable, message, nil)
}
