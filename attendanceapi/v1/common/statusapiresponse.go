package common

import "fmt"

type StatusAPIResponse[T any] struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    T           `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Err returns nil for a successful response, otherwise the backend message.
func (r *StatusAPIResponse[T]) Err() error {
	if r.Status {
		return nil
	}
	switch {
	case r.Error != nil:
		if s, ok := r.Error.(string); ok {
			return &BackendError{Message: s}
		}
		return &BackendError{Message: fmt.Sprintf("%v", r.Error)}
	case r.Message != "":
		return &BackendError{Message: r.Message}
	}
	return &BackendError{Message: "request was not successful"}
}

type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }
