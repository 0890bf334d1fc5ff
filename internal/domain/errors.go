package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error"
	CodeTransient    ErrCode = "transient_network"
	CodeCollaborator ErrCode = "collaborator_failure"
	CodeBroadcast    ErrCode = "broadcast_failure"
	CodeUnexpected   ErrCode = "unexpected_error"
)

type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }

func ErrTransient(msg string, err error) error {
	return &AppError{Code: CodeTransient, Message: msg, Err: err}
}

func ErrCollaborator(msg string, err error) error {
	return &AppError{Code: CodeCollaborator, Message: msg, Err: err}
}

func ErrBroadcast(msg string, err error) error {
	return &AppError{Code: CodeBroadcast, Message: msg, Err: err}
}

// IsTransient reports whether err should be retried by the backoff
// policy. Only connection-level failures qualify; well-formed negative
// responses from a collaborator are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == CodeTransient
}
