package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andchir/install-scripts/internal/catalog"
	"github.com/andchir/install-scripts/internal/version"
)

// CatalogHandler serves the script catalog loaded from per-language data files.
type CatalogHandler struct {
	Store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{Store: store}
}

// Index returns API information and the endpoint map.
func (h *CatalogHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    version.Name,
		"version": version.Version,
		"endpoints": gin.H{
			"/":                         "API information (this page)",
			"/health":                   "Health check endpoint",
			"/api/scripts_list":         "List all available installation scripts (supports ?lang=ru|en)",
			"/api/script/<script_name>": "Get information about a single script by script_name (supports ?lang=ru|en)",
			"/api/runs":                 "Record and list script execution results",
			"/api/runs/<id>":            "Get one script execution result",
		},
	})
}

// ScriptsList returns every script in the catalog for the requested
// language, falling back to the default language data file.
func (h *CatalogHandler) ScriptsList(c *gin.Context) {
	lang := c.DefaultQuery("lang", h.Store.DefaultLang)

	scripts, err := h.Store.Load(lang)
	if err != nil {
		status := catalogErrorStatus(err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
			"scripts": []catalog.Script{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(scripts),
		"scripts": scripts,
	})
}

// GetScript returns a single script looked up by its script_name.
func (h *CatalogHandler) GetScript(c *gin.Context) {
	lang := c.DefaultQuery("lang", h.Store.DefaultLang)
	name := c.Param("script_name")

	script, err := h.Store.Find(lang, name)
	if err != nil {
		status := catalogErrorStatus(err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
			"result":  nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  script,
	})
}

// catalogErrorStatus maps catalog error kinds onto HTTP statuses the same
// way the original API did: missing file or script 404, unreadable file 403,
// undecodable file 500.
func catalogErrorStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
