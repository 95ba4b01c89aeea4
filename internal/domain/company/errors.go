package company

import "errors"

var (
	ErrCompanyNotFound          = errors.New("company not found")
	ErrCompanySlugExists        = errors.New("company slug already exists")
	ErrInvalidCompanySlugFormat = errors.New("invalid company slug format")
	ErrInvalidCompanyName       = errors.New("company name cannot be empty")
	ErrInvalidAccessCode        = errors.New("invalid access code")
)
