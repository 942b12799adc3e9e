package domain

import (
	"strings"
	"time"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// Member is a roster entry. Unit is the only attribute used for scoping.
type Member struct {
	ID         string       `json:"id"`
	Unit       OrgUnit      `json:"unit"`
	HolyName   string       `json:"holy_name,omitempty"`
	FullName   string       `json:"full_name"`
	BirthDate  *time.Time   `json:"birth_date,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	ParentName string       `json:"parent_name,omitempty"`
	Status     MemberStatus `json:"status"`
	CreatedOn  time.Time    `json:"created_on"`
	UpdatedOn  time.Time    `json:"updated_on"`
}

// DisplayName is the name printed on rosters and ledger descriptions.
func (m *Member) DisplayName() string {
	return strings.TrimSpace(m.HolyName + " " + m.FullName)
}
