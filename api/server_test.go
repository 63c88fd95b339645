package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jiji-catalog/models"
	"jiji-catalog/services"
	"jiji-catalog/storage"
	"jiji-catalog/utils"
)

func newTestServer(t *testing.T, ads []*models.Ad) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	adsPath := filepath.Join(dir, "ads.json")
	data, err := json.Marshal(ads)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(adsPath, data, 0644))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	store, err := storage.NewGormProductStore(db)
	require.NoError(t, err)

	logger := utils.NewLogger()
	importer := services.NewImporter(store, adsPath, logger)
	return NewServer(importer, filepath.Join(dir, "images"), logger), dir
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestImportEndpointReturnsSummary(t *testing.T) {
	srv, _ := newTestServer(t, []*models.Ad{
		{Title: "Sofa", Price: "KSh 5,000", Link: "https://x/1", MainImage: "https://img/1.jpg"},
		{Title: "", Price: "KSh 1"},
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/products/import", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var summary models.ImportSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Errors)

	// Running the same import again must update, not duplicate.
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/products/import", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 1, summary.Updated)
}

func TestImportEndpointReportsMissingAdsFile(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "ads.json")))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/products/import", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var summary models.ImportSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Len(t, summary.Errors, 1)
	assert.Zero(t, summary.Imported)
}

func TestImagesAreServedStatically(t *testing.T) {
	srv, dir := newTestServer(t, nil)

	folder := filepath.Join(dir, "images", "Sofa")
	require.NoError(t, os.MkdirAll(folder, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "main.jpg"), []byte("jpg-bytes"), 0644))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/Sofa/main.jpg", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpg-bytes", w.Body.String())
}
