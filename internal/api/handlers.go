package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
	"go.uber.org/zap"
)

// Handler glues HTTP plumbing to the auth and gateway services. All business
// decisions live in the services; handlers only parse, dispatch and map
// errors to statuses.
type Handler struct {
	auth    Auth
	gateway Gateway
	logger  *zap.Logger
}

func NewHandler(auth Auth, gateway Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		auth:    auth,
		gateway: gateway,
		logger:  logger,
	}
}

func (h *Handler) AuthorizeURL(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"auth_url": h.auth.AuthorizeURL()})
}

func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "authorization code is required")
		return
	}

	result, err := h.auth.HandleCallback(r.Context(), req.Code)
	if err != nil {
		h.fail(w, r, "oauth callback", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) AuthRefresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := h.auth.Refresh(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "token refresh", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resume, err := h.gateway.GetResume(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "resume fetch", err)
		return
	}

	if resume == nil {
		writeJSON(w, http.StatusOK, map[string]any{"resume": nil})
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

func (h *Handler) SearchVacancies(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.gateway.SearchVacancies(r.Context(), userID, searchParamsFromQuery(r))
	if err != nil {
		h.fail(w, r, "vacancy search", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SearchVacanciesDetailed(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.gateway.SearchVacanciesWithDetails(r.Context(), userID, searchParamsFromQuery(r))
	if err != nil {
		h.fail(w, r, "detailed vacancy search", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) VacancyDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	detail, err := h.gateway.GetVacancyDetail(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "vacancy detail", err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analysis, err := h.gateway.AnalyzeMatch(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "match analysis", err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (h *Handler) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	letter, err := h.gateway.GenerateCoverLetter(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "cover letter generation", err)
		return
	}

	writeJSON(w, http.StatusOK, letter)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "application message is required")
		return
	}

	response, err := h.gateway.Apply(r.Context(), userID, chi.URLParam(r, "id"), req.Message)
	if err != nil {
		h.fail(w, r, "application", err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.gateway.History(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "application history", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": records})
}

func (h *Handler) Dictionaries(w http.ResponseWriter, r *http.Request) {
	dicts, err := h.gateway.Dictionaries(r.Context())
	if err != nil {
		h.fail(w, r, "dictionaries fetch", err)
		return
	}

	writeJSON(w, http.StatusOK, dicts)
}

func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.gateway.Areas(r.Context())
	if err != nil {
		h.fail(w, r, "areas fetch", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": areas})
}

// fail maps service errors onto HTTP statuses. Upstream errors keep their
// original status so the frontend sees what hh.ru saw.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var upstreamErr *headhunter.UpstreamError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication with hh.ru required")
	case errors.Is(err, domain.ErrNoResume):
		writeError(w, http.StatusBadRequest, "no resume found on hh.ru, create one to use this feature")
	case errors.As(err, &upstreamErr):
		h.logger.Warn(operation+" rejected by upstream",
			zap.Int("status", upstreamErr.StatusCode),
			zap.String("description", upstreamErr.Description),
			zap.String("path", r.URL.Path),
		)
		message := upstreamErr.Description
		if message == "" {
			message = "upstream request failed"
		}
		writeError(w, upstreamErr.StatusCode, message)
	default:
		h.logger.Error(operation+" failed", zap.Error(err), zap.String("path", r.URL.Path))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func searchParamsFromQuery(r *http.Request) *headhunter.SearchParams {
	q := r.URL.Query()

	salary, _ := strconv.Atoi(q.Get("salary"))
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	return &headhunter.SearchParams{
		Text:           q.Get("text"),
		Area:           q.Get("area"),
		Salary:         salary,
		OnlyWithSalary: q.Get("only_with_salary") == "true",
		Experience:     q.Get("experience"),
		Employment:     q.Get("employment"),
		Schedule:       q.Get("schedule"),
		Page:           page,
		PerPage:        perPage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
