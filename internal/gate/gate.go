// Package gate classifies navigation paths and decides whether a request
// may proceed. It is a pure function from (path, authenticated) to a
// decision so the route gate middleware stays trivially testable.
package gate

import "net/url"

type Category int

const (
	Public Category = iota
	Protected
	AuthOnly
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var (
	protectedPaths = []string{"/dashboard", "/tasks"}
	authOnlyPaths  = []string{"/login", "/register"}
)

// Classify maps a request path to exactly one category. Protected paths
// match exactly or by prefix with a "/" boundary; auth-only paths match
// exactly.
func Classify(path string) Category {
	for _, p := range protectedPaths {
		if path == p || hasPathPrefix(path, p) {
			return Protected
		}
	}
	for _, p := range authOnlyPaths {
		if path == p {
			return AuthOnly
		}
	}
	return Public
}

type Decision struct {
	Allow    bool
	Location string
}

// Decide applies the gating rules: a protected path without a valid
// session redirects to the login page carrying the original destination,
// and an auth-only page with a valid session redirects to the dashboard.
// Everything else passes through untouched.
func Decide(path string, authenticated bool) Decision {
	switch Classify(path) {
	case Protected:
		if !authenticated {
			return Decision{Location: LoginPath + "?from=" + url.QueryEscape(path)}
		}
	case AuthOnly:
		if authenticated {
			return Decision{Location: DashboardPath}
		}
	}
	return Decision{Allow: true}
}

func hasPathPrefix(path, prefix string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}
