package http

import (
	"net/http"

	"youthorg-backend-trusted/internal/access"
	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/service"

	"github.com/gorilla/mux"
)

// AccessHandler exposes the permission checks as boolean answers for page rendering.
type AccessHandler struct {
	memberSvc service.MemberService
}

func NewAccessHandler(memberSvc service.MemberService) *AccessHandler {
	return &AccessHandler{memberSvc: memberSvc}
}

type decision struct {
	Allowed bool `json:"allowed"`
}

type unitView struct {
	Code       domain.OrgUnit `json:"code"`
	Name       string         `json:"name"`
	Branch     domain.Branch  `json:"branch"`
	Accessible bool           `json:"accessible"`
}

func (h *AccessHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	units := domain.AllUnits()
	views := make([]unitView, 0, len(units))
	for _, u := range units {
		branch, _ := domain.BranchOf(u)
		views = append(views, unitView{
			Code:       u,
			Name:       u.DisplayName(),
			Branch:     branch,
			Accessible: access.CanAccessUnit(p, u),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *AccessHandler) CanAccessUnit(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	unit := domain.OrgUnit(mux.Vars(r)["unit"])
	writeJSON(w, http.StatusOK, decision{Allowed: access.CanAccessUnit(p, unit)})
}

func (h *AccessHandler) CanAccessMember(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, decision{Allowed: h.memberSvc.CanAccess(r.Context(), p, mux.Vars(r)["id"])})
}

func (h *AccessHandler) CanAccessLedger(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	q := r.URL.Query()
	scope := domain.LedgerScope(q.Get("scope"))
	unit := domain.OrgUnit(q.Get("unit"))
	writeJSON(w, http.StatusOK, decision{Allowed: access.CanAccessLedgerScope(p, scope, unit)})
}
