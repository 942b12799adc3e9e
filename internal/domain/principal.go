package domain

import "fmt"

// Principal is the authenticated actor behind a request. It is built once per
// session and replaced, never mutated, on re-login.
type Principal struct {
	ID        string  `json:"id"`
	Role      Role    `json:"role"`
	BoundUnit OrgUnit `json:"bound_unit,omitempty"`
}

// NewPrincipal builds a Principal from an authentication result.
//
// A unit leader must come with a catalog unit, otherwise ErrConfiguration is returned.
// For every other role the supplied unit is dropped so it can never widen access.
func NewPrincipal(id string, role Role, unit OrgUnit) (*Principal, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: principal id is required", ErrConfiguration)
	}
	if role.Class() != RoleClassUnitBound {
		return &Principal{ID: id, Role: role}, nil
	}
	if unit == "" {
		return nil, fmt.Errorf("%w: unit leader %s has no assigned unit", ErrConfiguration, id)
	}
	if !unit.IsValid() {
		return nil, fmt.Errorf("%w: unit leader %s is bound to unknown unit %q", ErrConfiguration, id, unit)
	}
	return &Principal{ID: id, Role: role, BoundUnit: unit}, nil
}
