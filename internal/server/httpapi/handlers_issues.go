package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/services"
	"github.com/google/uuid"
)

// createIssueRequest deliberately has no status or creator field:
// status always starts OPEN and the creator is the authenticated
// caller. Anything else a client sends there is ignored.
type createIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Priority    models.IssuePriority `json:"priority"`
	Type        models.IssueType     `json:"type"`
	ProjectID   uuid.UUID            `json:"project_id"`
}

type statusUpdateRequest struct {
	Status models.IssueStatus `json:"status"`
}

type assignRequest struct {
	AssignedToID uuid.UUID `json:"assigned_to_id"`
}

type issueResponse struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       models.IssueStatus   `json:"status"`
	Priority     models.IssuePriority `json:"priority"`
	Type         models.IssueType     `json:"type"`
	ProjectID    uuid.UUID            `json:"project_id"`
	AssignedToID *uuid.UUID           `json:"assigned_to_id"`
	CreatedByID  uuid.UUID            `json:"created_by_id"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func toIssueResponse(i *models.Issue) issueResponse {
	return issueResponse{
		ID:           i.ID,
		Title:        i.Title,
		Description:  i.Description,
		Status:       i.Status,
		Priority:     i.Priority,
		Type:         i.Type,
		ProjectID:    i.ProjectID,
		AssignedToID: i.AssignedToID,
		CreatedByID:  i.CreatedByID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req createIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	issue, err := s.issues.Create(r.Context(), currentUser(r), services.CreateIssueParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Type:        req.Type,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toIssueResponse(issue))
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid project_id", common.ErrorValidation))
		return
	}

	result, err := s.issues.ListByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]issueResponse, 0, len(result))
	for _, i := range result {
		resp = append(resp, toIssueResponse(i))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	issue, err := s.issues.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIssueResponse(issue))
}

func (s *Server) handleUpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	issue, err := s.issues.UpdateStatus(r.Context(), currentUser(r), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIssueResponse(issue))
}

func (s *Server) handleAssignIssue(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	issue, err := s.issues.Assign(r.Context(), currentUser(r), id, req.AssignedToID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIssueResponse(issue))
}
