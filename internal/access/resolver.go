// Package access decides which organizational records a principal may read or change.
//
// Every function here is pure and total: it never fails and answers false for any
// principal or role it does not recognize. Role clauses are checked in the fixed order
// unrestricted, self-scoped, unit-bound, and the first matching clause decides.
package access

import "youthorg-backend-trusted/internal/domain"

// CanAccessUnit reports whether p may open the roster of unit as a whole.
// Members never get unit-level visibility, not even of their own unit.
func CanAccessUnit(p *domain.Principal, unit domain.OrgUnit) bool {
	if p == nil {
		return false
	}
	switch p.Role.Class() {
	case domain.RoleClassUnrestricted:
		return true
	case domain.RoleClassSelfScoped:
		return false
	case domain.RoleClassUnitBound:
		return p.BoundUnit != "" && p.BoundUnit == unit
	default:
		return false
	}
}

// CanAccessMember reports whether p may read or edit the record of member memberID,
// who belongs to memberUnit.
func CanAccessMember(p *domain.Principal, memberID string, memberUnit domain.OrgUnit) bool {
	if p == nil {
		return false
	}
	switch p.Role.Class() {
	case domain.RoleClassUnrestricted:
		return true
	case domain.RoleClassSelfScoped:
		return memberID != "" && memberID == p.ID
	case domain.RoleClassUnitBound:
		return p.BoundUnit != "" && p.BoundUnit == memberUnit
	default:
		return false
	}
}

// CanAccessLedgerScope reports whether p may see ledger entries of the given scope.
//
// This is stricter than CanAccessUnit: a unit leader sees only the fund of its own
// unit and never the general fund, although it manages that unit's roster.
func CanAccessLedgerScope(p *domain.Principal, scope domain.LedgerScope, targetUnit domain.OrgUnit) bool {
	if p == nil {
		return false
	}
	switch p.Role.Class() {
	case domain.RoleClassUnrestricted:
		return scope == domain.ScopeGeneral || scope == domain.ScopeUnit
	case domain.RoleClassSelfScoped:
		return false
	case domain.RoleClassUnitBound:
		return scope == domain.ScopeUnit && p.BoundUnit != "" && p.BoundUnit == targetUnit
	default:
		return false
	}
}

// CanAuthorLedgerEntry reports whether p may create an entry in the given fund.
// On top of the scope check, a unit-bound principal may only author entries whose
// target unit is exactly its own.
func CanAuthorLedgerEntry(p *domain.Principal, scope domain.LedgerScope, targetUnit domain.OrgUnit) bool {
	if !CanAccessLedgerScope(p, scope, targetUnit) {
		return false
	}
	if p.Role.Class() == domain.RoleClassUnitBound {
		return targetUnit == p.BoundUnit
	}
	return true
}

// VisibleUnits returns the catalog units p may open, in display order.
func VisibleUnits(p *domain.Principal) []domain.OrgUnit {
	var units []domain.OrgUnit
	for _, u := range domain.AllUnits() {
		if CanAccessUnit(p, u) {
			units = append(units, u)
		}
	}
	return units
}
