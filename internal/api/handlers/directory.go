package handlers

import (
	"net/http"

	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler handles HTTP requests for corporate directory lookups
type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// SearchDirectory searches the corporate directory by name
// @Summary Search the corporate directory
// @Description Look developers up in the LDAP directory by common-name prefix
// @Tags directory
// @Accept json
// @Produce json
// @Param name query string true "Name prefix to search for"
// @Success 200 {array} service.DirectoryUser "Successfully retrieved directory entries"
// @Failure 400 {object} ErrorResponse "Missing name parameter"
// @Failure 502 {object} ErrorResponse "Directory lookup failed"
// @Security BearerAuth
// @Router /directory/search [get]
func (h *DirectoryHandler) SearchDirectory(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name parameter is required"})
		return
	}

	users, err := h.directoryService.SearchByName(name)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "directory lookup failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}
