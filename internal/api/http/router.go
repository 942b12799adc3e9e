package http

import (
	"net/http"

	"youthorg-backend-trusted/internal/security"
	"youthorg-backend-trusted/internal/service"

	"github.com/gorilla/mux"
)

type Services struct {
	Members    service.MemberService
	Ledger     service.LedgerService
	Collection service.CollectionService
}

// NewRouter registers every API route behind the auth middleware. /healthz stays public.
func NewRouter(svc Services, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Handler)

	accessHandler := NewAccessHandler(svc.Members)
	api.HandleFunc("/units", accessHandler.ListUnits).Methods(http.MethodGet)
	api.HandleFunc("/access/units/{unit}", accessHandler.CanAccessUnit).Methods(http.MethodGet)
	api.HandleFunc("/access/members/{id}", accessHandler.CanAccessMember).Methods(http.MethodGet)
	api.HandleFunc("/access/ledger", accessHandler.CanAccessLedger).Methods(http.MethodGet)

	memberHandler := NewMemberHandler(svc.Members)
	api.HandleFunc("/members", memberHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/members", memberHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}", memberHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", memberHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/units/{unit}/members", memberHandler.ListByUnit).Methods(http.MethodGet)

	ledgerHandler := NewLedgerHandler(svc.Ledger, svc.Collection)
	api.HandleFunc("/ledger/transactions", ledgerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/ledger/transactions", ledgerHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/ledger/transactions/{id}", ledgerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/ledger/transactions/{id}/status", ledgerHandler.SetStatus).Methods(http.MethodPatch)
	api.HandleFunc("/ledger/collections", ledgerHandler.Collect).Methods(http.MethodPost)
	api.HandleFunc("/ledger/summary", ledgerHandler.Summary).Methods(http.MethodGet)

	return router
}
