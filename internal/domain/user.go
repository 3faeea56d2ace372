package domain

import (
	"errors"
	"time"
)

// Role enumerates account roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleClient       Role = "client"
	RoleOpsManager   Role = "opsManager"
	RoleServiceAgent Role = "serviceAgent"
)

// ParseRole validates a requested role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleOpsManager, RoleServiceAgent:
		return Role(s), true
	}
	return "", false
}

// User is the domain model for accounts. Only serviceAgents carry an AgentID.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	AgentID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	ErrAgentIDRequired  = errors.New("serviceAgent must have an agentId")
	ErrAgentIDForbidden = errors.New("non-serviceAgent users must not have an agentId")
)

// Validate enforces the role/agentId cross-field invariant at creation time.
func (u *User) Validate() error {
	if _, ok := ParseRole(string(u.Role)); !ok {
		return errors.New("invalid role")
	}
	isAgent := u.Role == RoleServiceAgent
	hasAgentID := u.AgentID != nil && *u.AgentID != ""
	if isAgent && !hasAgentID {
		return ErrAgentIDRequired
	}
	if !isAgent && hasAgentID {
		return ErrAgentIDForbidden
	}
	return nil
}
