package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerEntryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/entries/{entryID}/live", handler.GetEntryLive)
	mux.HandleFunc("GET /v1/entries/{entryID}/breakdown", handler.GetEntryBreakdown)
	mux.HandleFunc("GET /v1/entries/{entryID}/summary", handler.GetEntrySummary)
}

func registerEventRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events/{event}/bonus", handler.GetEventBonus)
	mux.HandleFunc("GET /v1/recommendations", handler.ListRecommendations)
}

func registerProxyRoutes(mux *http.ServeMux, proxy *ProxyHandler) {
	if proxy == nil {
		return
	}
	mux.HandleFunc("GET /api/proxy/{upstream...}", proxy.Passthrough)
}
