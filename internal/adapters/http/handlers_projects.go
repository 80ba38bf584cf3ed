package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/application"
	"github.com/openlance/openlance/internal/ports"
)

type createProjectRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Skills        []string   `json:"skills"`
	BudgetMin     float64    `json:"budgetMin,omitempty"`
	BudgetMax     float64    `json:"budgetMax,omitempty"`
	DurationWeeks int        `json:"durationWeeks,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_project", err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), application.CreateProjectInput{
		OwnerAccountID: claims.AccountID,
		Title:          req.Title,
		Description:    req.Description,
		Skills:         req.Skills,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		DurationWeeks:  req.DurationWeeks,
		Deadline:       req.Deadline,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "create_project", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectView(project))
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	var caller *ports.TokenClaims
	if claims, ok := claimsFromContext(r.Context()); ok {
		caller = &claims
	}
	q := r.URL.Query()

	in := application.ListProjectsInput{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Mine:   q.Get("mine") == "true",
		Caller: caller,
		Page:   parseIntDefault(q.Get("page"), 1),
		Limit:  parseIntDefault(q.Get("limit"), 20),
	}
	if raw := q.Get("skills"); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				in.Skills = append(in.Skills, skill)
			}
		}
	}
	var err error
	if in.MinBudget, err = parseFloatParam(q.Get("min_budget")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "min_budget must be a number")
		return
	}
	if in.MaxBudget, err = parseFloatParam(q.Get("max_budget")); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "max_budget must be a number")
		return
	}

	page, err := h.service.ListProjects(r.Context(), in)
	if err != nil {
		writeMappedError(r.Context(), w, "list_projects", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectPageView(page))
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid project id")
		return
	}
	var caller *ports.TokenClaims
	if claims, ok := claimsFromContext(r.Context()); ok {
		caller = &claims
	}

	project, err := h.service.GetProject(r.Context(), projectID, caller)
	if err != nil {
		writeMappedError(r.Context(), w, "get_project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(project))
}

type updateProjectRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Skills        []string   `json:"skills,omitempty"`
	BudgetMin     *float64   `json:"budgetMin,omitempty"`
	BudgetMax     *float64   `json:"budgetMax,omitempty"`
	DurationWeeks *int       `json:"durationWeeks,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid project id")
		return
	}
	var req updateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_project", err)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), application.UpdateProjectInput{
		AccountID:     claims.AccountID,
		ProjectID:     projectID,
		Title:         req.Title,
		Description:   req.Description,
		Skills:        req.Skills,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		DurationWeeks: req.DurationWeeks,
		Deadline:      req.Deadline,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "update_project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(project))
}

func (h *Handler) publishProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid project id")
		return
	}

	project, err := h.service.PublishProject(r.Context(), projectID, claims.AccountID)
	if err != nil {
		writeMappedError(r.Context(), w, "publish_project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(project))
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid project id")
		return
	}

	if err := h.service.DeleteProject(r.Context(), projectID, claims.AccountID); err != nil {
		writeMappedError(r.Context(), w, "delete_project", err)
		return
	}
	writeMessage(w, http.StatusOK, "project deleted")
}
