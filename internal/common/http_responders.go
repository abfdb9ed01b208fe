package common

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type HttpResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

const ErrorCodeGeneric = "generic_error"

func GetNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SendHttpFailResponse(w, r, http.StatusNotFound, fmt.Sprintf("endpoint[%s] not found", r.URL.Path))
	}
}

// SendHttpFailResponse writes an unsuccessful envelope; when `errorCode`
// is provided, its string form is sent as `.data` so that clients can
// map it back to a sentinel error
func SendHttpFailResponse(
	responseWriter http.ResponseWriter,
	request *http.Request,
	statusCode int,
	message string,
	errorCode ...error,
) {
	GetRequestLogger(request)(LogLevelError, message)
	responseData := HttpResponse{
		Message: message,
		Success: false,
		Data:    ErrorCodeGeneric,
	}
	if len(errorCode) > 0 && errorCode[0] != nil {
		responseData.Data = errorCode[0].Error()
	}
	writeJson(responseWriter, statusCode, responseData)
}

func SendHttpSuccessResponse(
	responseWriter http.ResponseWriter,
	request *http.Request,
	statusCode int,
	message string,
	data ...any,
) {
	responseData := HttpResponse{
		Message: message,
		Success: true,
	}
	if len(data) > 0 {
		responseData.Data = data[0]
	}
	writeJson(responseWriter, statusCode, responseData)
}

// SendHttpRawResponse writes `data` as-is without the response envelope
func SendHttpRawResponse(responseWriter http.ResponseWriter, statusCode int, data any) {
	writeJson(responseWriter, statusCode, data)
}

func writeJson(responseWriter http.ResponseWriter, statusCode int, data any) {
	res, _ := json.Marshal(data)
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)
	responseWriter.Write(res)
}
