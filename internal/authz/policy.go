// Package authz decides which credential each route requires. Route rules
// live in an embedded casbin policy keyed by pseudo-subject: "public" for
// open routes, or the scope a caller must hold.
package authz

import (
	_ "embed"
	"fmt"
	"path"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// Scopes understood by the policy.
const (
	ScopeEmployeeRead  = "employee.read"
	ScopeEmployeeWrite = "employee.write"
)

// SubjectPublic marks routes that need no credential.
const SubjectPublic = "public"

//go:embed model.conf
var defaultModel string

//go:embed policy.csv
var defaultPolicy string

// candidates are queried in order; the first allowed subject decides the
// requirement.
var candidates = []string{SubjectPublic, ScopeEmployeeRead, ScopeEmployeeWrite}

// Access is the kind of credential a route requires.
type Access int

const (
	// AccessAuthenticated requires any valid token. Routes without a rule get this.
	AccessAuthenticated Access = iota
	// AccessPublic requires nothing.
	AccessPublic
	// AccessScope requires a valid token granting Requirement.Scope.
	AccessScope
)

// Requirement is what a route demands of the caller.
type Requirement struct {
	Access Access
	Scope  string
}

// Public reports whether the route needs no credential.
func (r Requirement) Public() bool {
	return r.Access == AccessPublic
}

// Policy resolves route requirements. It is safe for concurrent use.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy loads the embedded route policy.
func NewPolicy() (*Policy, error) {
	return NewPolicyFromText(defaultModel, defaultPolicy)
}

// NewPolicyFromText builds a policy from a casbin model and CSV policy lines.
func NewPolicyFromText(modelText, policyText string) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(policyText))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to load policy: %w", err)
	}
	return &Policy{enforcer: enforcer}, nil
}

// Requirement returns what the route (method, path) demands. The path is
// matched in canonical form, so "/employees/" and "//employees" resolve like
// "/employees".
func (p *Policy) Requirement(method, rawPath string) (Requirement, error) {
	path := canonicalPath(rawPath)
	for _, subject := range candidates {
		allowed, err := p.enforcer.Enforce(subject, path, method)
		if err != nil {
			return Requirement{}, fmt.Errorf("authz: enforce %s %s: %w", method, path, err)
		}
		if !allowed {
			continue
		}
		if subject == SubjectPublic {
			return Requirement{Access: AccessPublic}, nil
		}
		return Requirement{Access: AccessScope, Scope: subject}, nil
	}
	return Requirement{Access: AccessAuthenticated}, nil
}

// canonicalPath cleans dot segments, repeated slashes and any trailing slash.
func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

// Check reports whether claims satisfy req. Nil claims mean the caller is
// unauthenticated.
func Check(req Requirement, claims *auth.Claims) error {
	switch req.Access {
	case AccessPublic:
		return nil
	case AccessAuthenticated:
		if claims == nil {
			return domain.NewUnauthenticatedError(domain.MsgAuthRequired, auth.ErrMissingToken)
		}
		return nil
	case AccessScope:
		if claims == nil {
			return domain.NewUnauthenticatedError(domain.MsgAuthRequired, auth.ErrMissingToken)
		}
		if !claims.HasScope(req.Scope) {
			return domain.NewForbiddenError(domain.MsgInsufficientScope)
		}
		return nil
	default:
		return fmt.Errorf("authz: unknown access kind %d", req.Access)
	}
}

// Decide evaluates the route (method, path) against verified claims.
func (p *Policy) Decide(method, path string, claims *auth.Claims) error {
	req, err := p.Requirement(method, path)
	if err != nil {
		return err
	}
	return Check(req, claims)
}
