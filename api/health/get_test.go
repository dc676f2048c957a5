package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
	"github.com/masterphooey/wakeword-recorder-api/internal/database"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("healthy with database", func(t *testing.T) {
		db, err := database.Initialize(":memory:", false)
		require.NoError(t, err)
		defer db.Close()

		router := gin.New()
		RegisterRoutes(router, &types.Dependencies{DB: db})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
		assert.NotEmpty(t, resp["timestamp"])

		dbStatus := resp["database"].(map[string]interface{})
		assert.Equal(t, "healthy", dbStatus["status"])
	})

	t.Run("ok without database", func(t *testing.T) {
		router := gin.New()
		RegisterRoutes(router, &types.Dependencies{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])

		dbStatus := resp["database"].(map[string]interface{})
		assert.Equal(t, "not configured", dbStatus["status"])
	})
}
