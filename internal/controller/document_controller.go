package controller

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

type DocumentController struct {
	documentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Upload godoc
// @Summary Upload a school document
// @Description Plain-text formats get their content extracted for tutor retrieval
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param title formData string false "Display title"
// @Success 201 {object} util.Response{data=model.Document}
// @Router /api/teacher/documents [post]
func (ctrl *DocumentController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		util.BadRequest(c, fmt.Sprintf("file exceeds the %d MiB limit", maxUploadBytes>>20))
		return
	}

	doc, err := ctrl.documentService.Upload(c.Request.Context(), currentSchoolID(c), currentUserID(c), c.PostForm("title"), fileHeader)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, doc)
}

func (ctrl *DocumentController) List(c *gin.Context) {
	page, limit := pagination(c)
	docs, total, err := ctrl.documentService.List(currentSchoolID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, docs, total, page, limit)
}

func (ctrl *DocumentController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid document id")
		return
	}

	doc, err := ctrl.documentService.Get(id, currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, doc)
}

func (ctrl *DocumentController) Download(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid document id")
		return
	}

	doc, reader, err := ctrl.documentService.Download(c.Request.Context(), id, currentSchoolID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Header("Content-Type", doc.ContentType)
	_, _ = io.Copy(c.Writer, reader)
}

func (ctrl *DocumentController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid document id")
		return
	}

	if err := ctrl.documentService.Delete(c.Request.Context(), id, currentSchoolID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
