package repository

import "errors"

// Sentinel kinds for snapshot document errors.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrAmbiguous = errors.New("ambiguous entity name")
	ErrRead      = errors.New("read snapshot document")
	ErrDecode    = errors.New("decode snapshot document")
	ErrPersist   = errors.New("persist snapshot document")
)
