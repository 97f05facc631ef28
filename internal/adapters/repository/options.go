package repository

import "os"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFileMode sets the permissions of the saved document.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithIndent sets the indentation used when saving. An empty string
// writes compact JSON.
func WithIndent(indent string) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}
