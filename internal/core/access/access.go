// Package access holds the role membership registry that gates every
// mutating operation of the ledger.
package access

import (
	"fmt"
	"sync"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// Registry maps role names to identity sets. Grants and revokes are
// admin-gated and idempotent; membership lookups are pure.
type Registry struct {
	mu      sync.RWMutex
	members map[domain.Role]map[domain.Identity]bool
}

// NewRegistry returns a registry whose only member is the bootstrap admin.
func NewRegistry(admin domain.Identity) *Registry {
	r := &Registry{
		members: make(map[domain.Role]map[domain.Identity]bool),
	}
	r.add(domain.RoleAdmin, admin)
	return r
}

func (r *Registry) add(role domain.Role, id domain.Identity) {
	set := r.members[role]
	if set == nil {
		set = make(map[domain.Identity]bool)
		r.members[role] = set
	}
	set[id] = true
}

// HasRole reports whether the identity currently holds the role.
func (r *Registry) HasRole(role domain.Role, id domain.Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[role][id]
}

// Grant adds the identity to the role. Granting a role already held is a
// no-op. Only admins may grant.
func (r *Registry) Grant(caller domain.Identity, role domain.Role, id domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.members[domain.RoleAdmin][caller] {
		return fmt.Errorf("grant %s: %w", role, domain.ErrUnauthorized)
	}
	r.add(role, id)
	return nil
}

// Revoke removes the identity from the role. Revoking an unheld role is a
// no-op. Only admins may revoke.
func (r *Registry) Revoke(caller domain.Identity, role domain.Role, id domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.members[domain.RoleAdmin][caller] {
		return fmt.Errorf("revoke %s: %w", role, domain.ErrUnauthorized)
	}
	delete(r.members[role], id)
	return nil
}

// AddCouncilMember grants the four council roles as one atomic bundle. The
// admin check happens once, before any membership changes.
func (r *Registry) AddCouncilMember(caller, id domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.members[domain.RoleAdmin][caller] {
		return fmt.Errorf("add council member: %w", domain.ErrUnauthorized)
	}
	for _, role := range domain.CouncilRoles {
		r.add(role, id)
	}
	return nil
}

// RemoveCouncilMember revokes the four council roles as one atomic bundle.
func (r *Registry) RemoveCouncilMember(caller, id domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.members[domain.RoleAdmin][caller] {
		return fmt.Errorf("remove council member: %w", domain.ErrUnauthorized)
	}
	for _, role := range domain.CouncilRoles {
		delete(r.members[role], id)
	}
	return nil
}
