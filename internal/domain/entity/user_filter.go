package entity

// UserFilter is a domain-level filter for the user directory.
// Used by repository layer to avoid coupling with delivery DTOs.
type UserFilter struct {
	UserType UserType // Exact match, empty means any
	Search   string   // Substring over username, email, first and last name (ILIKE)
	Limit    int
	Offset   int
}
