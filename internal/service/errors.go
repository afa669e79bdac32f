package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap them
// with fmt.Errorf("%w: ...") so the reason survives into the logs.
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 400, duplicate email/category/review
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrInvalidCredentials = errors.New("invalid credentials") // 401, same for unknown email and bad password
	ErrAccountDisabled    = errors.New("account disabled")    // 403
	ErrInvalidTransition  = errors.New("invalid transition")  // 400, cancel outside pending
)
