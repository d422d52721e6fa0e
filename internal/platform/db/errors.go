package db

// StorageError marks a driver-level failure (connectivity, unexpected
// constraint violation) so callers can distinguish it from domain
// failures and respond with retry-or-fail instead of swallowing it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
