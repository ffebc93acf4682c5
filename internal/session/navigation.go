package session

// Status is the navigation state derived from a session State
type Status string

const (
	Loading         Status = "loading"
	Authenticated   Status = "authenticated"
	Unauthenticated Status = "unauthenticated"
)

// Routes known to the client
const (
	PathHome      = "/"
	PathAuth      = "/auth"
	PathReset     = "/reset-password"
	PathDashboard = "/dashboard"
	PathNotFound  = "/404"
)

var protectedPaths = map[string]bool{
	PathDashboard:          true,
	"/profile":             true,
	"/portfolio":           true,
	"/position-calculator": true,
	"/daily-compounding":   true,
	"/converter":           true,
	"/todo":                true,
}

var publicPaths = map[string]bool{
	PathHome:     true,
	PathAuth:     true,
	PathReset:    true,
	PathNotFound: true,
}

// Resolve maps a session state onto a navigation status
func Resolve(s State) Status {
	switch {
	case s.IsLoading:
		return Loading
	case s.Session != nil:
		return Authenticated
	default:
		return Unauthenticated
	}
}

// Navigate returns where a client on path should go, or "" to stay.
func Navigate(status Status, path string) string {
	if !protectedPaths[path] && !publicPaths[path] {
		return PathNotFound
	}
	switch status {
	case Unauthenticated:
		if protectedPaths[path] {
			return PathAuth
		}
	case Authenticated:
		if path == PathAuth || path == PathHome {
			return PathDashboard
		}
	}
	return ""
}

// IsProtected reports whether path needs a session
func IsProtected(path string) bool {
	return protectedPaths[path]
}
