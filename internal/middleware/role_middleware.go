package middleware

import (
	"fmt"
	"strings"

	"go-payroll/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// roleModel grants a role a set of HTTP methods. Policies are held in
// memory; fine-grained authorization lives outside this service.
const roleModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && regexMatch(r.act, p.act)
`

// readOnlyMethods is the method pattern granted to read-only roles.
const readOnlyMethods = "^(GET|HEAD)$"

// RoleGrants splits administrative route access by role. Admin roles may use
// every method; ReadOnly roles may only read.
type RoleGrants struct {
	Admin    []string
	ReadOnly []string
}

// NewRoleEnforcer builds an enforcer where every role in roles may use the
// methods matched by methodPattern. Roles are stored upper-cased.
func NewRoleEnforcer(roles []string, methodPattern string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("role model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("role enforcer: %w", err)
	}
	if err := grant(e, roles, methodPattern); err != nil {
		return nil, err
	}
	return e, nil
}

// Enforcer builds the enforcer for g.
func (g RoleGrants) Enforcer() (*casbin.Enforcer, error) {
	e, err := NewRoleEnforcer(g.Admin, ".*")
	if err != nil {
		return nil, err
	}
	if err := grant(e, g.ReadOnly, readOnlyMethods); err != nil {
		return nil, err
	}
	return e, nil
}

func grant(e *casbin.Enforcer, roles []string, methodPattern string) error {
	for _, role := range roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		if _, err := e.AddPolicy(role, methodPattern); err != nil {
			return fmt.Errorf("grant %s: %w", role, err)
		}
	}
	return nil
}

// RoleMiddleware is a coarse gate for administrative routes: the caller's
// role (set by AuthMiddleware) must be granted the request method.
func RoleMiddleware(grants RoleGrants) gin.HandlerFunc {
	enforcer, err := grants.Enforcer()
	if err != nil {
		zap.L().Named("middleware.role").Error("build role enforcer failed", zap.Error(err))
		return func(c *gin.Context) { abort(c, apperror.ErrInternal) }
	}

	return func(c *gin.Context) {
		role := strings.ToUpper(c.GetString("role"))
		ok, err := enforcer.Enforce(role, c.Request.Method)
		if err != nil {
			abort(c, apperror.ErrInternal)
			return
		}
		if !ok {
			abort(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
