package dto

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type StatusResponse struct {
	StatusCode string `json:"statusCode" example:"201"`
	StatusMsg  string `json:"statusMsg" example:"Account created successfully"`
}

func NewStatusResponse(status int, message string) StatusResponse {
	return StatusResponse{StatusCode: strconv.Itoa(status), StatusMsg: message}
}

type ErrorResponse struct {
	APIPath      string    `json:"apiPath" example:"/api/fetch"`
	ErrorCode    string    `json:"errorCode" example:"NOT_FOUND"`
	ErrorMessage string    `json:"errorMessage"`
	ErrorTime    time.Time `json:"errorTime"`
}

func NewErrorResponse(apiPath string, status int, message string) ErrorResponse {
	return ErrorResponse{
		APIPath:      apiPath,
		ErrorCode:    ErrorCode(status),
		ErrorMessage: message,
		ErrorTime:    time.Now().UTC(),
	}
}

// ErrorCode renders a status as an upper snake case name, e.g. 404 as NOT_FOUND.
func ErrorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}

type ContactInfoResponse struct {
	Message        string            `json:"message"`
	ContactDetails map[string]string `json:"contactDetails"`
	OnCallSupport  []string          `json:"onCallSupport"`
}
