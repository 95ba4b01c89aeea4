package policy

import "errors"

var (
	ErrPolicyNotFound   = errors.New("policy setting not found")
	ErrInvalidPolicyDoc = errors.New("policy document is not valid JSON")
)
