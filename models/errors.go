package models

type ErrorNotFound struct {
	Message string
	Err     error
}

func (e *ErrorNotFound) Error() string { return joinMessage(e.Message, e.Err) }
func (e *ErrorNotFound) Unwrap() error { return e.Err }

type ErrorConflict struct {
	Message string
	Err     error
}

func (e *ErrorConflict) Error() string { return joinMessage(e.Message, e.Err) }
func (e *ErrorConflict) Unwrap() error { return e.Err }

type ErrorUnauthorized struct {
	Message string
}

func (e *ErrorUnauthorized) Error() string { return e.Message }

type ErrorValidation struct {
	Message string
	Err     error
}

func (e *ErrorValidation) Error() string { return joinMessage(e.Message, e.Err) }
func (e *ErrorValidation) Unwrap() error { return e.Err }

type ErrorInternalServer struct {
	Message string
	Err     error
}

func (e *ErrorInternalServer) Error() string { return joinMessage(e.Message, e.Err) }
func (e *ErrorInternalServer) Unwrap() error { return e.Err }

func NewNotFound(msg string) error     { return &ErrorNotFound{Message: msg} }
func NewConflict(msg string) error     { return &ErrorConflict{Message: msg} }
func NewUnauthorized(msg string) error { return &ErrorUnauthorized{Message: msg} }
func NewValidation(msg string) error   { return &ErrorValidation{Message: msg} }

func joinMessage(msg string, err error) string {
	if err != nil {
		return msg + ": " + err.Error()
	}
	return msg
}
