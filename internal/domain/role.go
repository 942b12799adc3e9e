package domain

type Role string

const (
	RoleRootAdmin     Role = "ROOT_ADMIN"
	RoleFamilyHead    Role = "FAMILY_HEAD"
	RoleInterUnitHead Role = "INTER_UNIT_HEAD"
	RoleUnitLeader    Role = "UNIT_LEADER"
	RoleMember        Role = "MEMBER"
	RoleParentViewer  Role = "PARENT_VIEWER"
)

// RoleClass groups roles by how far their access reaches.
type RoleClass int

const (
	RoleClassNoAccess RoleClass = iota
	RoleClassUnitBound
	RoleClassSelfScoped
	RoleClassUnrestricted
)

func (c RoleClass) String() string {
	switch c {
	case RoleClassUnrestricted:
		return "unrestricted"
	case RoleClassSelfScoped:
		return "self_scoped"
	case RoleClassUnitBound:
		return "unit_bound"
	default:
		return "no_access"
	}
}

// Class returns the access class of r. Roles outside the known set are NoAccess.
func (r Role) Class() RoleClass {
	switch r {
	case RoleRootAdmin, RoleFamilyHead, RoleInterUnitHead:
		return RoleClassUnrestricted
	case RoleMember:
		return RoleClassSelfScoped
	case RoleUnitLeader:
		return RoleClassUnitBound
	default:
		return RoleClassNoAccess
	}
}
