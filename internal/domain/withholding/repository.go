package withholding

import "context"

type Repository interface {
	// ReplaceYear swaps out every cell of a year in one transaction.
	ReplaceYear(ctx context.Context, year int, cells []Cell) (int, error)
	ListByYear(ctx context.Context, year int) ([]Cell, error)
	// Years returns (year, cell count) pairs for every imported year.
	Years(ctx context.Context) ([]YearCount, error)
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}
