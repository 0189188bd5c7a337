package service

import (
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// Operation is what an actor wants to do with a single case.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// AgentDeletePolicy settles whether an assigned, non-owning agent may delete
// a case. The upstream behavior was inconsistent across call sites, so it is
// an explicit deployment decision.
type AgentDeletePolicy string

const (
	DeleteOwnerOnly     AgentDeletePolicy = "owner_only"
	DeleteAssignedAgent AgentDeletePolicy = "assigned_agent"
)

func ParseAgentDeletePolicy(v string) (AgentDeletePolicy, bool) {
	switch AgentDeletePolicy(v) {
	case DeleteOwnerOnly, DeleteAssignedAgent:
		return AgentDeletePolicy(v), true
	}
	return "", false
}

// CanAccess is the single decision point for read, update, and delete of one
// case. It only decides; it never mutates. Rules, in order: administrators
// act on any case; the owning customer acts on their own case; the assigned
// agent reads and updates, and deletes only under DeleteAssignedAgent; any
// agent reads and updates an unassigned case, which is how claiming works.
func CanAccess(actor models.Actor, c *models.Case, op Operation, policy AgentDeletePolicy) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.ID == c.CustomerID {
		return true
	}
	if actor.IsAgent() && c.AgentID != nil && *c.AgentID == actor.ID {
		if op == OpDelete {
			return policy == DeleteAssignedAgent
		}
		return true
	}
	if actor.IsAgent() && c.AgentID == nil {
		return op == OpRead || op == OpUpdate
	}
	return false
}

// Scope is the subset of cases an actor's role entitles them to see.
// ActiveOnly further narrows reporting scopes to active cases.
type Scope struct {
	All               bool
	CustomerID        string
	AgentID           string
	IncludeUnassigned bool
	ActiveOnly        bool
}

// ScopeFor is the listing scope: customers see their own cases, agents see
// cases assigned to them or unassigned ones, administrators see everything.
func ScopeFor(actor models.Actor) (Scope, error) {
	switch {
	case actor.IsCustomer():
		return Scope{CustomerID: actor.ID}, nil
	case actor.IsAgent():
		return Scope{AgentID: actor.ID, IncludeUnassigned: true}, nil
	case actor.IsAdmin():
		return Scope{All: true}, nil
	}
	return Scope{}, ErrUnrecognizedRole
}

// ReportScopeFor is the dashboard/statistics scope. It differs from the
// listing scope in one place: agents report only on cases assigned to them.
func ReportScopeFor(actor models.Actor) (Scope, error) {
	switch {
	case actor.IsCustomer():
		return Scope{CustomerID: actor.ID}, nil
	case actor.IsAgent():
		return Scope{AgentID: actor.ID}, nil
	case actor.IsAdmin():
		return Scope{All: true}, nil
	}
	return Scope{}, ErrUnrecognizedRole
}

// Contains reports whether a case falls inside the scope.
func (s Scope) Contains(c *models.Case) bool {
	if s.ActiveOnly && !c.IsActive {
		return false
	}
	if s.All {
		return true
	}
	if s.CustomerID != "" {
		return c.CustomerID == s.CustomerID
	}
	if c.AgentID != nil && *c.AgentID == s.AgentID {
		return true
	}
	return s.IncludeUnassigned && c.AgentID == nil
}

// CaseFilter holds the optional equality predicates ANDed onto a scope.
type CaseFilter struct {
	Status   models.CaseStatus
	Kind     models.CaseKind
	Priority models.CasePriority
}

// Matches reports whether a case satisfies every set predicate.
func (f CaseFilter) Matches(c *models.Case) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	return true
}
