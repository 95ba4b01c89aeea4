package company

import "time"

type Company struct {
	ID         string
	Name       string
	Slug       string
	AccessHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
