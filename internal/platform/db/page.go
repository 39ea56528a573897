package db

import "fmt"

// Page limits a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// Clause returns the LIMIT/OFFSET suffix with placeholders numbered from
// next, and the args to append.
func (p Page) Clause(next int) (string, []any) {
	if p.Limit <= 0 {
		if p.Offset > 0 {
			return fmt.Sprintf(" OFFSET $%d", next), []any{p.Offset}
		}
		return "", nil
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", next, next+1), []any{p.Limit, p.Offset}
}
