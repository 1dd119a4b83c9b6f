package httpapi

import (
	"net/http"
	"time"

	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type createAttachmentRequest struct {
	FileName string `json:"file_name"`
}

type attachmentResponse struct {
	ID           uuid.UUID `json:"id"`
	IssueID      uuid.UUID `json:"issue_id"`
	FileName     string    `json:"file_name"`
	UploadedByID uuid.UUID `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type attachmentUploadResponse struct {
	Attachment attachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
}

func toAttachmentResponse(a *models.IssueAttachment) attachmentResponse {
	return attachmentResponse{
		ID:           a.ID,
		IssueID:      a.IssueID,
		FileName:     a.FileName,
		UploadedByID: a.UploadedByID,
		CreatedAt:    a.CreatedAt,
	}
}

func (s *Server) handleCreateAttachment(w http.ResponseWriter, r *http.Request) {
	issueID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createAttachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	attachment, uploadURL, err := s.attachments.CreateUpload(r.Context(), currentUser(r), issueID, req.FileName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attachmentUploadResponse{
		Attachment: toAttachmentResponse(attachment),
		UploadURL:  uploadURL,
	})
}

func (s *Server) handleListAttachments(w http.ResponseWriter, r *http.Request) {
	issueID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.attachments.ListByIssue(r.Context(), issueID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]attachmentResponse, 0, len(result))
	for _, a := range result {
		resp = append(resp, toAttachmentResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttachmentURL(w http.ResponseWriter, r *http.Request) {
	issueID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := s.attachments.GetDownloadURL(r.Context(), issueID, attachmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"download_url": url})
}
