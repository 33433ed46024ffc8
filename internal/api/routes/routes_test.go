package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andchir/install-scripts/internal/config"
)

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		DataDir:     t.TempDir(),
		DefaultLang: "ru",
	}

	runs, err := Register(router, db, cfg)
	require.NoError(t, err)
	assert.NotNil(t, runs)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /api/scripts_list",
		"GET /api/script/:script_name",
		"POST /api/runs",
		"GET /api/runs/:id",
	} {
		assert.True(t, registered[want], "route %s should be registered", want)
	}
}
