package contextkeys

// ContextKey is the type used for values stored in request contexts.
type ContextKey string

const (
	// DBContextKey carries the *gorm.DB handle (pool or transaction)
	// injected by the DB middleware.
	DBContextKey ContextKey = "db"

	// UserIDContextKey carries the authenticated user id.
	UserIDContextKey ContextKey = "userID"

	// RoleContextKey carries the authenticated user role.
	RoleContextKey ContextKey = "role"
)
