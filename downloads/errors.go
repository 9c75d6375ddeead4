package downloads

import "errors"

var (
	ErrNoPasswordsConfigured = errors.New("downloads: no passwords configured")
	ErrStoreRequired         = errors.New("downloads: blob store is required")
	ErrWrongPassword         = errors.New("downloads: wrong password")
	ErrEmailRequired         = errors.New("downloads: email is required")
)
