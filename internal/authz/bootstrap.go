package authz

import (
	"fmt"

	"github.com/drm-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// viewer 只读全业务，manager 在此之上可操作业务单据，admin 全权限（含管理端）。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleViewer,
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/me/password", Action: "POST"},
				{Object: "/estimates", Action: "GET"},
				{Object: "/estimates/:id", Action: "GET"},
				{Object: "/contracts", Action: "GET"},
				{Object: "/contracts/:id", Action: "GET"},
				{Object: "/contracts/:id/order-plan", Action: "GET"},
				{Object: "/contracts/:id/orders", Action: "GET"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/partners", Action: "GET"},
				{Object: "/partners/:id", Action: "GET"},
				{Object: "/partners/match", Action: "GET"},
				{Object: "/construction-ledgers", Action: "GET"},
				{Object: "/construction-ledgers/:id", Action: "GET"},
				{Object: "/construction-ledgers/:id/variance", Action: "GET"},
				{Object: "/construction-ledgers/:id/export", Action: "GET"},
				{Object: "/deadline-alerts", Action: "GET"},
				{Object: "/workflow-settings", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleManager,
			Inherits: []string{constants.RoleViewer},
			Policies: []Policy{
				{Object: "/estimates", Action: "*"},
				{Object: "/estimates/:id", Action: "*"},
				{Object: "/estimates/:id/status", Action: "*"},
				{Object: "/contracts", Action: "*"},
				{Object: "/contracts/:id", Action: "*"},
				{Object: "/contracts/from-estimate", Action: "POST"},
				{Object: "/contracts/:id/status", Action: "POST"},
				{Object: "/contracts/:id/sign", Action: "POST"},
				{Object: "/contracts/:id/approval", Action: "POST"},
				{Object: "/orders", Action: "*"},
				{Object: "/orders/:id", Action: "*"},
				{Object: "/orders/split", Action: "POST"},
				{Object: "/orders/:id/status", Action: "POST"},
				{Object: "/partners", Action: "*"},
				{Object: "/partners/:id", Action: "*"},
				{Object: "/construction-ledgers", Action: "*"},
				{Object: "/construction-ledgers/:id", Action: "*"},
				{Object: "/construction-ledgers/from-contract", Action: "POST"},
				{Object: "/construction-ledgers/:id/costs", Action: "POST"},
				{Object: "/deadline-alerts/:id/notified", Action: "POST"},
				{Object: "/workflow-settings", Action: "PUT"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleManager},
			Policies: []Policy{
				{Object: "/*", Action: "*"},
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
