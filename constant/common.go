package constant

type contextKey string

// UserIDKey carries the authenticated subject (external auth id)
// through request contexts.
const UserIDKey contextKey = "user_id"

// Roles assigned on first identity sync.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
