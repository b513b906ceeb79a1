package access

import (
	"errors"
	"testing"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

const (
	admin    = domain.Identity("admin")
	alice    = domain.Identity("alice")
	intruder = domain.Identity("intruder")
)

func TestGrant_AdminOnly(t *testing.T) {
	r := NewRegistry(admin)

	err := r.Grant(intruder, domain.RoleFarmer, alice)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
	if r.HasRole(domain.RoleFarmer, alice) {
		t.Error("rejected grant must not change membership")
	}

	if err := r.Grant(admin, domain.RoleFarmer, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !r.HasRole(domain.RoleFarmer, alice) {
		t.Error("expected alice to hold farmer role")
	}
}

func TestGrant_Idempotent(t *testing.T) {
	r := NewRegistry(admin)

	if err := r.Grant(admin, domain.RoleFarmer, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := r.Grant(admin, domain.RoleFarmer, alice); err != nil {
		t.Errorf("granting a held role must be a no-op, got: %v", err)
	}
	if !r.HasRole(domain.RoleFarmer, alice) {
		t.Error("expected membership to survive repeated grant")
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	r := NewRegistry(admin)

	if err := r.Revoke(admin, domain.RoleFarmer, alice); err != nil {
		t.Errorf("revoking an unheld role must be a no-op, got: %v", err)
	}

	if err := r.Grant(admin, domain.RoleFarmer, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := r.Revoke(admin, domain.RoleFarmer, alice); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if r.HasRole(domain.RoleFarmer, alice) {
		t.Error("expected alice to lose farmer role")
	}
}

func TestRevoke_NonAdmin(t *testing.T) {
	r := NewRegistry(admin)
	if err := r.Grant(admin, domain.RoleFarmer, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	err := r.Revoke(intruder, domain.RoleFarmer, alice)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
	if !r.HasRole(domain.RoleFarmer, alice) {
		t.Error("rejected revoke must not change membership")
	}
}

func TestCouncilBundle(t *testing.T) {
	r := NewRegistry(admin)

	if err := r.AddCouncilMember(admin, alice); err != nil {
		t.Fatalf("add council member failed: %v", err)
	}
	for _, role := range domain.CouncilRoles {
		if !r.HasRole(role, alice) {
			t.Errorf("expected alice to hold %s", role)
		}
	}

	if err := r.RemoveCouncilMember(admin, alice); err != nil {
		t.Fatalf("remove council member failed: %v", err)
	}
	for _, role := range domain.CouncilRoles {
		if r.HasRole(role, alice) {
			t.Errorf("expected alice to lose %s", role)
		}
	}
}

func TestCouncilBundle_NonAdmin(t *testing.T) {
	r := NewRegistry(admin)

	err := r.AddCouncilMember(intruder, alice)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
	for _, role := range domain.CouncilRoles {
		if r.HasRole(role, alice) {
			t.Errorf("rejected bundle must grant nothing, alice holds %s", role)
		}
	}
}

func TestCouncilBundle_DoesNotTouchOtherRoles(t *testing.T) {
	r := NewRegistry(admin)
	if err := r.Grant(admin, domain.RoleDistributor, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	if err := r.AddCouncilMember(admin, alice); err != nil {
		t.Fatalf("add council member failed: %v", err)
	}
	if err := r.RemoveCouncilMember(admin, alice); err != nil {
		t.Fatalf("remove council member failed: %v", err)
	}

	if !r.HasRole(domain.RoleDistributor, alice) {
		t.Error("council removal must not touch the distributor role")
	}
}
