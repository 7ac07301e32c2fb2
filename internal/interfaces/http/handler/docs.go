package handler

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

// DocsHandler serves the OpenAPI description of the API
type DocsHandler struct {
	doc *openapi3.T
}

// NewDocsHandler creates a DocsHandler for a loaded document
func NewDocsHandler(doc *openapi3.T) *DocsHandler {
	return &DocsHandler{doc: doc}
}

// OpenAPI handles GET /openapi.json. The document is served bare, without
// the response envelope, so tooling can consume it directly.
func (h *DocsHandler) OpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc)
}
