package bootstrap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/generations"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
)

func TestBuildDevFallsBackToMemoryRepo(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")

	app, err := Build(config.Config{
		Env:           "dev",
		HFAPIToken:    "hf_test",
		LocalStoreDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Nil(t, app.DB)
	assert.IsType(t, &generations.MemoryRepo{}, app.GenerationsRepo)
	assert.NotNil(t, app.Enhancer)
	require.NotNil(t, app.Router)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))

	_, err := Build(config.Config{
		Env:           "production",
		HFAPIToken:    "hf_test",
		LocalStoreDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestBuildRequiresGeneratorToken(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))

	_, err := Build(config.Config{Env: "dev", LocalStoreDir: t.TempDir()})
	assert.Error(t, err)
}

func TestIsDevLike(t *testing.T) {
	assert.True(t, isDevLike("dev"))
	assert.True(t, isDevLike(" Local "))
	assert.False(t, isDevLike("production"))
	assert.False(t, isDevLike("staging"))
}
