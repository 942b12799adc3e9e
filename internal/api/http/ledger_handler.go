package http

import (
	"fmt"
	"net/http"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	ledgerSvc     service.LedgerService
	collectionSvc service.CollectionService
}

func NewLedgerHandler(ledgerSvc service.LedgerService, collectionSvc service.CollectionService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, collectionSvc: collectionSvc}
}

type recordRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Scope       string          `json:"scope"`
	TargetUnit  string          `json:"target_unit,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type collectionRequest struct {
	Unit            string          `json:"unit"`
	AmountPerMember decimal.Decimal `json:"amount_per_member"`
	Date            string          `json:"date,omitempty"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	MemberIDs       []string        `json:"member_ids"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return d, nil
}

func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	q := r.URL.Query()
	filter := domain.LedgerFilter{
		Scope:     domain.LedgerScope(q.Get("scope")),
		Unit:      domain.OrgUnit(q.Get("unit")),
		Direction: domain.Direction(q.Get("direction")),
		Status:    domain.TransactionStatus(q.Get("status")),
	}
	txs, err := h.ledgerSvc.ListVisible(r.Context(), p, filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(txs))
}

func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	tx, err := h.ledgerSvc.Get(r.Context(), p, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *LedgerHandler) Record(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	tx, err := h.ledgerSvc.Record(r.Context(), p, domain.TransactionDraft{
		Amount:      req.Amount,
		Direction:   domain.Direction(req.Direction),
		Scope:       domain.LedgerScope(req.Scope),
		TargetUnit:  domain.OrgUnit(req.TargetUnit),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *LedgerHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	tx, err := h.ledgerSvc.SetStatus(r.Context(), p, mux.Vars(r)["id"], domain.TransactionStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *LedgerHandler) Collect(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	txs, err := h.collectionSvc.Collect(r.Context(), p, service.CollectionRequest{
		Unit:            domain.OrgUnit(req.Unit),
		AmountPerMember: req.AmountPerMember,
		Date:            date,
		Description:     req.Description,
		Category:        req.Category,
		MemberIDs:       req.MemberIDs,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, txs)
}

func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	q := r.URL.Query()
	summary, err := h.ledgerSvc.Summary(r.Context(), p, domain.LedgerScope(q.Get("scope")), domain.OrgUnit(q.Get("unit")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
