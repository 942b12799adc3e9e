package http

import (
	"fmt"
	"net/http"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/service"

	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

type memberRequest struct {
	ID         string `json:"id,omitempty"`
	Unit       string `json:"unit"`
	HolyName   string `json:"holy_name,omitempty"`
	FullName   string `json:"full_name"`
	BirthDate  string `json:"birth_date,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (req memberRequest) toMember() (*domain.Member, error) {
	m := &domain.Member{
		ID:         req.ID,
		Unit:       domain.OrgUnit(req.Unit),
		HolyName:   req.HolyName,
		FullName:   req.FullName,
		Phone:      req.Phone,
		ParentName: req.ParentName,
		Status:     domain.MemberStatus(req.Status),
	}
	if req.BirthDate != "" {
		birth, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", domain.ErrValidation)
		}
		m.BirthDate = &birth
	}
	return m, nil
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	members, err := h.memberSvc.ListVisible(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(members))
}

func (h *MemberHandler) ListByUnit(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	members, err := h.memberSvc.ListByUnit(r.Context(), p, domain.OrgUnit(mux.Vars(r)["unit"]))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(members))
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	m, err := h.memberSvc.Get(r.Context(), p, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	m, err := req.toMember()
	if err == nil {
		err = h.memberSvc.Create(r.Context(), p, m)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Update is a full replace; the path id wins over any id in the body.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	req.ID = mux.Vars(r)["id"]
	m, err := req.toMember()
	if err == nil {
		err = h.memberSvc.Update(r.Context(), p, m)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
