package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andchir/install-scripts/internal/catalog"
)

func newCatalogRouter(t *testing.T, dataFiles map[string]string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	for lang, content := range dataFiles {
		err := os.WriteFile(filepath.Join(dir, "data_"+lang+".json"), []byte(content), 0644)
		require.NoError(t, err)
	}

	h := NewCatalogHandler(catalog.NewStore(dir, "ru"))
	r := gin.New()
	r.GET("/", h.Index)
	r.GET("/api/scripts_list", h.ScriptsList)
	r.GET("/api/script/:script_name", h.GetScript)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestCatalogIndex(t *testing.T) {
	r := newCatalogRouter(t, map[string]string{"ru": "[]"})

	code, body := getJSON(t, r, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Install Scripts API", body["name"])
	assert.Contains(t, body["endpoints"], "/api/scripts_list")
}

func TestCatalogScriptsList(t *testing.T) {
	r := newCatalogRouter(t, map[string]string{
		"ru": `[{"script_name": "pocketbase", "name": "PocketBase"},
		       {"script_name": "various-useful-api-django", "name": "Django API"}]`,
		"en": `[{"script_name": "pocketbase", "name": "PocketBase EN"}]`,
	})

	code, body := getJSON(t, r, "/api/scripts_list")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	code, body = getJSON(t, r, "/api/scripts_list?lang=en")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	// Unknown language falls back to the default data file.
	code, body = getJSON(t, r, "/api/scripts_list?lang=de")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["count"])
}

func TestCatalogScriptsListSanitizesResults(t *testing.T) {
	r := newCatalogRouter(t, map[string]string{
		"ru": `[{"script_name": "pocketbase", "name": "PocketBase",
		        "result": "\\^[[0;32m✔\\^[[0m Domain configured\\^@\\^@"}]`,
	})

	code, body := getJSON(t, r, "/api/scripts_list")
	assert.Equal(t, http.StatusOK, code)

	scripts := body["scripts"].([]any)
	require.Len(t, scripts, 1)
	assert.Equal(t, "✔ Domain configured", scripts[0].(map[string]any)["result"])
}

func TestCatalogScriptsListErrors(t *testing.T) {
	r := newCatalogRouter(t, map[string]string{})
	code, body := getJSON(t, r, "/api/scripts_list")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])

	r = newCatalogRouter(t, map[string]string{"ru": `{broken`})
	code, body = getJSON(t, r, "/api/scripts_list")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
}

func TestCatalogGetScript(t *testing.T) {
	r := newCatalogRouter(t, map[string]string{
		"ru": `[{"script_name": "pocketbase", "name": "PocketBase"}]`,
	})

	code, body := getJSON(t, r, "/api/script/pocketbase")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	result := body["result"].(map[string]any)
	assert.Equal(t, "PocketBase", result["name"])

	code, body = getJSON(t, r, "/api/script/no-such-script")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["result"])
}
