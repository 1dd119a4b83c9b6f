package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type projectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PMID        uuid.UUID `json:"pm_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		PMID:        p.PMID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// pathUUID parses the named path segment as a UUID, failing with a
// validation error on malformed input.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", common.ErrorValidation, name)
	}
	return id, nil
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project, err := s.projects.Create(r.Context(), currentUser(r), req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	var (
		result []*models.Project
		err    error
	)

	if raw := r.URL.Query().Get("pm_id"); raw != "" {
		pmID, perr := uuid.Parse(raw)
		if perr != nil {
			writeError(w, fmt.Errorf("%w: invalid pm_id", common.ErrorValidation))
			return
		}
		result, err = s.projects.ListByPM(r.Context(), pmID)
	} else {
		result, err = s.projects.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(result))
	for _, p := range result {
		resp = append(resp, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := s.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}
