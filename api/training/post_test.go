package training

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
	"github.com/masterphooey/wakeword-recorder-api/internal/database"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/recorder"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/runs"
)

func setupTestRouter(t *testing.T, withHistory bool) (*gin.Engine, *types.Dependencies, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := recorder.NewFilesystemStore(filepath.Join(dir, "samples"))
	require.NoError(t, err)

	scriptPath := filepath.Join(dir, "train.sh")

	var history runs.Service
	if withHistory {
		db, err := database.Initialize(":memory:", false)
		require.NoError(t, err)
		require.NoError(t, db.Migrate())
		t.Cleanup(func() { db.Close() })
		history = runs.NewService(runs.NewRepository(db.DB))
	}

	deps := &types.Dependencies{
		Recorder: recorder.NewManager(recorder.Config{
			Store:                  store,
			History:                history,
			ScriptPath:             scriptPath,
			LogPath:                filepath.Join(dir, "training.log"),
			DefaultSpeakersTotal:   1,
			DefaultTakesPerSpeaker: 3,
		}),
		Runs: history,
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/training"), deps)
	return router, deps, scriptPath
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\n"+body+"\n"), 0o755))
}

func ingestTakes(t *testing.T, deps *types.Dependencies, count int) {
	t.Helper()
	ctx := context.Background()
	_, err := deps.Recorder.StartSession(ctx, recorder.StartSessionParams{Phrase: "Hey Norman"})
	require.NoError(t, err)

	payload := bytes.Repeat([]byte{0x01}, recorder.MinTakeBytes)
	for i := 1; i <= count; i++ {
		_, _, err := deps.Recorder.IngestTake(ctx, 1, i, payload)
		require.NoError(t, err)
	}
}

func waitForIdle(t *testing.T, deps *types.Dependencies) recorder.TrainingSnapshot {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		snap := deps.Recorder.TrainingStatus()
		if !snap.Running {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("training did not finish in time")
	return recorder.TrainingSnapshot{}
}

func TestPost(t *testing.T) {
	t.Run("rejects when script is missing", func(t *testing.T) {
		router, deps, _ := setupTestRouter(t, false)
		ingestTakes(t, deps, 3)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "TRAINING_SCRIPT_MISSING")
	})

	t.Run("rejects without a session", func(t *testing.T) {
		router, _, scriptPath := setupTestRouter(t, false)
		writeScript(t, scriptPath, "exit 0")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "NO_ACTIVE_SESSION")
	})

	t.Run("rejects with too few takes", func(t *testing.T) {
		router, deps, scriptPath := setupTestRouter(t, false)
		writeScript(t, scriptPath, "exit 0")
		ingestTakes(t, deps, 2)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_ENOUGH_TAKES")
	})

	t.Run("accepts and runs training", func(t *testing.T) {
		router, deps, scriptPath := setupTestRouter(t, false)
		writeScript(t, scriptPath, `echo "training $2"`)
		ingestTakes(t, deps, 3)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))

		require.Equal(t, http.StatusAccepted, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["started"])
		assert.Equal(t, "hey_norman", resp["safe_word"])

		snap := waitForIdle(t, deps)
		require.NotNil(t, snap.ExitCode)
		assert.Zero(t, *snap.ExitCode)
	})

	t.Run("rejects while a run is active", func(t *testing.T) {
		router, deps, scriptPath := setupTestRouter(t, false)
		writeScript(t, scriptPath, "sleep 2")
		ingestTakes(t, deps, 3)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))
		require.Equal(t, http.StatusAccepted, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_RUNNING")

		waitForIdle(t, deps)
	})
}

func TestGet(t *testing.T) {
	router, deps, scriptPath := setupTestRouter(t, false)
	writeScript(t, scriptPath, `echo "line one"; echo "line two"; exit 3`)
	ingestTakes(t, deps, 3)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/training", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["running"])
	assert.Nil(t, resp["exit_code"])
	assert.NotNil(t, resp["log_lines"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))
	require.Equal(t, http.StatusAccepted, w.Code)
	waitForIdle(t, deps)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/training", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["running"])
	assert.Equal(t, float64(3), resp["exit_code"])
	assert.Contains(t, resp["log_lines"], "line one")
	assert.Contains(t, resp["log_lines"], "line two")
}

func TestGetRuns(t *testing.T) {
	t.Run("unavailable without history", func(t *testing.T) {
		router, _, _ := setupTestRouter(t, false)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/training/runs", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "DATABASE_CONNECTION")
	})

	t.Run("rejects invalid limit", func(t *testing.T) {
		router, _, _ := setupTestRouter(t, true)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/training/runs?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("lists archived runs", func(t *testing.T) {
		router, deps, scriptPath := setupTestRouter(t, true)
		writeScript(t, scriptPath, "exit 0")
		ingestTakes(t, deps, 3)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/training", nil))
		require.Equal(t, http.StatusAccepted, w.Code)
		waitForIdle(t, deps)

		// The archive write happens after the state flips to idle; give it a
		// moment to land.
		var listed []interface{}
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/training/runs", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			listed = resp["runs"].([]interface{})
			if len(listed) > 0 {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}

		require.Len(t, listed, 1)
		run := listed[0].(map[string]interface{})
		assert.Equal(t, "hey_norman", run["safe_word"])
		assert.Equal(t, "Hey Norman", run["phrase"])
		assert.Equal(t, float64(0), run["exit_code"])
		assert.Equal(t, true, run["succeeded"])
		assert.Equal(t, float64(3), run["takes_used"])
		assert.NotEmpty(t, run["run_id"])
	})
}
