package contextkeys

// ContextKey is a typed key for values stored in request contexts so that
// unrelated packages cannot collide on plain string keys.
type ContextKey string

const (
	// DBContextKey holds the *gorm.DB (connection pool or an open transaction)
	// for the current request. Set by middleware.DBMiddleware, read by
	// handlers.BaseHandler.GetDB.
	DBContextKey ContextKey = "db"
)
