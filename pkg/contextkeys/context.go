package contextkeys

// Custom type so keys never collide with other packages
type contextKey string

// DBContextKey stores the request's *gorm.DB
const DBContextKey = contextKey("db")

// ViewerKey stores the resolved *auth.Viewer for the request
const ViewerKey = contextKey("viewer")
