package entity

// Pagination constants
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
	MinPageSize     = 1
	DefaultPage     = 1
)

// PaginationParams represents pagination request parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// Valid reports whether page and limit are within the accepted bounds.
func (p PaginationParams) Valid() bool {
	return p.Page >= DefaultPage && p.Limit >= MinPageSize && p.Limit <= MaxPageSize
}

// CalculateOffset calculates the database offset from page and limit
func (p PaginationParams) CalculateOffset() int {
	return (p.Page - 1) * p.Limit
}

// PaymentPage is one page of payments, newest first, with the total count
// and the requested page and limit echoed back.
type PaymentPage struct {
	Payments []*Payment
	Total    int64
	Page     int
	Limit    int
}
