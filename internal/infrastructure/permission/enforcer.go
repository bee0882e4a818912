// Package permission guards routes with a casbin role policy stored in the
// database.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// Subjects are role names (ADMIN, USER); objects are resource names.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// Seed makes the stored policy match p: missing rules are added and rules
// no longer in p are removed.
func (e *Enforcer) Seed(p *Policy) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	wanted := make(map[[3]string]struct{})
	added := 0
	for _, rule := range p.Rules() {
		wanted[rule] = struct{}{}
		ok, err := e.enforcer.AddPolicy(rule[0], rule[1], rule[2])
		if err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", rule[0], rule[1], rule[2], err)
		}
		if ok {
			added++
		}
	}

	stored, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}
	removed := 0
	for _, rule := range stored {
		if len(rule) < 3 {
			continue
		}
		if _, ok := wanted[[3]string{rule[0], rule[1], rule[2]}]; ok {
			continue
		}
		if _, err := e.enforcer.RemovePolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("failed to remove policy [%s, %s, %s]: %w", rule[0], rule[1], rule[2], err)
		}
		removed++
	}

	if added > 0 || removed > 0 {
		e.logger.Infow("permission policies synced", "added", added, "removed", removed)
	}
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
