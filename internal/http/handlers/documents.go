package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http/middleware"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// @Summary Attach supporting documents to a case
// @Description Uploads one or more files; descriptions pair with files by
// position.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "supporting files"
// @Param descriptions formData string false "per-file descriptions"
// @Success 201 {array} models.SupportingDocument
// @Failure 400 {object} map[string]any
// @Router /api/cases/{id}/documents [post]
func (h *Handler) DocumentsAttach(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one file is required", nil)
		return
	}
	descriptions := form.Value["descriptions"]

	caseID := c.Param("id")
	ctx := c.Request.Context()

	var refs []models.FileRef
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Unreadable upload", err.Error())
			return
		}
		ref, err := h.Files.Save(ctx, caseID, fh.Filename, fh.Size, f)
		_ = f.Close()
		if err != nil {
			h.Logger.Error().Err(err).Str("case_id", caseID).Msg("file save failed")
			h.removeFiles(c, refs)
			writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store upload", err.Error())
			return
		}
		refs = append(refs, ref)
	}

	actor := middleware.ActorFrom(c)
	docs, err := h.Cases.AttachDocuments(ctx, actor, caseID, refs, descriptions)
	if err != nil {
		h.removeFiles(c, refs)
		h.writeServiceError(c, err)
		return
	}
	if docs == nil {
		docs = []*models.SupportingDocument{}
	}
	c.JSON(http.StatusCreated, docs)
}

// removeFiles is the best-effort cleanup after a failed attach.
func (h *Handler) removeFiles(c *gin.Context, refs []models.FileRef) {
	for _, ref := range refs {
		if err := h.Files.Remove(c.Request.Context(), ref); err != nil {
			h.Logger.Warn().Err(err).Str("file", ref.URL).Msg("orphaned upload not removed")
		}
	}
}

func (h *Handler) DocumentsList(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	docs, err := h.Cases.ListDocuments(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if docs == nil {
		docs = []*models.SupportingDocument{}
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) DocumentDelete(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	caseID := c.Param("id")
	docID := c.Param("docId")

	docs, err := h.Cases.ListDocuments(c.Request.Context(), actor, caseID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var ref *models.FileRef
	for _, d := range docs {
		if d.ID == docID {
			ref = &d.File
			break
		}
	}

	if err := h.Cases.DeleteDocument(c.Request.Context(), actor, caseID, docID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ref != nil {
		if err := h.Files.Remove(c.Request.Context(), *ref); err != nil {
			h.Logger.Warn().Err(err).Str("file", ref.URL).Msg("stored file not removed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
