package domain

import "fmt"

// OrgUnit identifies one of the fixed units ("Đoàn") of the organization.
type OrgUnit string

const (
	UnitChienCon OrgUnit = "CHIEN_CON"
	UnitAuNhi    OrgUnit = "AU_NHI"
	UnitThieuNhi OrgUnit = "THIEU_NHI"
	UnitNghiaSi  OrgUnit = "NGHIA_SI"
	UnitHiepSi   OrgUnit = "HIEP_SI"
	UnitDuTruong OrgUnit = "DU_TRUONG"
)

// Branch is the age-based grouping ("Ngành") a unit belongs to. It is informational
// and never used for access decisions.
type Branch string

const (
	BranchDong  Branch = "DONG"
	BranchThieu Branch = "THIEU"
	BranchThanh Branch = "THANH"
)

type unitInfo struct {
	unit   OrgUnit
	branch Branch
	name   string
}

// catalog order is the display order
var catalog = []unitInfo{
	{UnitChienCon, BranchDong, "Đoàn Chiên Con"},
	{UnitAuNhi, BranchDong, "Đoàn Ấu Nhi"},
	{UnitThieuNhi, BranchThieu, "Đoàn Thiếu Nhi"},
	{UnitNghiaSi, BranchThieu, "Đoàn Nghĩa Sĩ"},
	{UnitHiepSi, BranchThanh, "Đoàn Hiệp Sĩ"},
	{UnitDuTruong, BranchThanh, "Đoàn Dự Trưởng"},
}

// AllUnits returns every unit of the catalog in display order.
func AllUnits() []OrgUnit {
	units := make([]OrgUnit, 0, len(catalog))
	for _, info := range catalog {
		units = append(units, info.unit)
	}
	return units
}

// IsValid reports whether u is part of the catalog.
func (u OrgUnit) IsValid() bool {
	_, ok := lookupUnit(u)
	return ok
}

// DisplayName returns the human readable unit name, or the raw code for unknown units.
func (u OrgUnit) DisplayName() string {
	if info, ok := lookupUnit(u); ok {
		return info.name
	}
	return string(u)
}

// BranchOf returns the branch of u. The second result is false for units outside the catalog.
func BranchOf(u OrgUnit) (Branch, bool) {
	info, ok := lookupUnit(u)
	if !ok {
		return "", false
	}
	return info.branch, true
}

// UnitsInBranch returns the units grouped under b, in display order.
func UnitsInBranch(b Branch) []OrgUnit {
	var units []OrgUnit
	for _, info := range catalog {
		if info.branch == b {
			units = append(units, info.unit)
		}
	}
	return units
}

// ParseOrgUnit converts an identifier coming from a form or token into a catalog unit.
func ParseOrgUnit(s string) (OrgUnit, error) {
	u := OrgUnit(s)
	if !u.IsValid() {
		return "", fmt.Errorf("%w: unknown unit %q", ErrValidation, s)
	}
	return u, nil
}

func lookupUnit(u OrgUnit) (unitInfo, bool) {
	for _, info := range catalog {
		if info.unit == u {
			return info, true
		}
	}
	return unitInfo{}, false
}
