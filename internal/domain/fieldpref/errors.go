package fieldpref

import "errors"

var (
	ErrExtraFieldNotFound    = errors.New("extra field not found")
	ErrExtraFieldLabelExists = errors.New("extra field label already exists")
	ErrInvalidFieldType      = errors.New("invalid field type")
	ErrInvalidGroup          = errors.New("invalid field group")
)
