// Package gateway implements the client-side route guard: a local,
// stateless decision over (session token, required role) evaluated on
// every navigation attempt. It is a fast UX boundary only; the server
// re-validates every call independently.
package gateway

import (
	"campusgate/internal/auth"
	"campusgate/internal/roles"
)

// LoginPath is the uniform redirect target for every denial. Denials
// never distinguish "no token" from "wrong role", so the route-to-role
// layout is not leaked.
const LoginPath = "/login"

// Decision is the outcome of a navigation check.
type Decision struct {
	Admit      bool
	RedirectTo string // set only on deny
}

var deny = Decision{Admit: false, RedirectTo: LoginPath}

// Route pairs a protected destination with the single role allowed to
// reach it.
type Route struct {
	Path     string
	Required roles.Role
}

// Guard authorizes navigation against locally decodable token claims.
// It performs no I/O and caches nothing across navigations.
type Guard struct {
	tokens *auth.JWTService
	routes map[string]roles.Role
}

// NewGuard builds a guard over the static dashboard route table: each
// role maps to exactly one dashboard root.
func NewGuard(tokens *auth.JWTService) *Guard {
	routes := make(map[string]roles.Role, len(roles.All))
	for _, r := range roles.All {
		routes[roles.DashboardPath(r)] = r
	}
	return &Guard{tokens: tokens, routes: routes}
}

// Routes returns the protected destinations and their required roles.
func (g *Guard) Routes() []Route {
	out := make([]Route, 0, len(g.routes))
	for _, r := range roles.All {
		out = append(out, Route{Path: roles.DashboardPath(r), Required: r})
	}
	return out
}

// Authorize decides whether the given token may reach a destination
// requiring the given role. Missing, undecodable, expired or tampered
// tokens and role mismatches all deny with a redirect to login.
// Same input yields the same decision, modulo wall-clock expiry.
func (g *Guard) Authorize(token string, required roles.Role) Decision {
	if token == "" {
		return deny
	}
	claims, err := g.tokens.Parse(token)
	if err != nil {
		// Undecodable is treated as not authenticated, fail closed.
		return deny
	}
	if claims.Role != required {
		return deny
	}
	return Decision{Admit: true}
}

// AuthorizePath resolves a destination path against the route table and
// applies Authorize. Paths outside the table are unprotected.
func (g *Guard) AuthorizePath(token, path string) Decision {
	required, protected := g.routes[path]
	if !protected {
		return Decision{Admit: true}
	}
	return g.Authorize(token, required)
}

// Home returns the dashboard destination for a freshly issued token,
// or the login path when the token does not decode.
func (g *Guard) Home(token string) string {
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return LoginPath
	}
	if p := roles.DashboardPath(claims.Role); p != "" {
		return p
	}
	return LoginPath
}
