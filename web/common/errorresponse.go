package common

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewCodedErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
		Code:    code,
	}
}
