package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/ayahrecall/internal/errors"
	"github.com/vytor/ayahrecall/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := errors.AsAppError(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}}); err != nil {
		log.Error("failed to encode error response: %v", err)
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, &errors.AppError{
		Code:    errors.ErrCodeNotFound,
		Message: "no route for " + r.URL.Path,
		Status:  http.StatusNotFound,
	})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, &errors.AppError{
		Code:    errors.ErrCodeBadRequest,
		Message: r.Method + " not allowed on " + r.URL.Path,
		Status:  http.StatusMethodNotAllowed,
	})
}
