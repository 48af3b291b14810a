package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"airport-feedback/internal/logger"
	"airport-feedback/internal/models"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

func feedbackAPI(t *testing.T) *httptest.Server {
	t.Helper()
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	records := []models.Feedback{
		{ID: bson.NewObjectID(), Location: models.LocationCheckIn, Rating: models.RatingGood, CreatedAt: now},
		{ID: bson.NewObjectID(), Location: models.LocationArrivals, Rating: models.RatingBad, CreatedAt: now.AddDate(0, -2, 0)},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(records)
		case http.MethodPost:
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Feedback{ID: bson.NewObjectID(), Location: in["location"], Rating: in["rating"], CreatedAt: now})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExportCommand_WritesWindowedWorkbook(t *testing.T) {
	srv := feedbackAPI(t)
	out := filepath.Join(t.TempDir(), "june.xlsx")

	err := newApp().Run(context.Background(), []string{
		"feedback-dashboard", "--api", srv.URL,
		"export", "--window", "monthly", "--now", "2025-06-20T09:00:00Z", "--format", "xlsx", "--out", out,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Feedback")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header plus the one June record")
}

func TestExportCommand_RejectsBadInput(t *testing.T) {
	srv := feedbackAPI(t)
	dir := t.TempDir()

	for _, args := range [][]string{
		{"export", "--format", "docx", "--out", filepath.Join(dir, "a")},
		{"export", "--window", "hourly", "--out", filepath.Join(dir, "b")},
		{"export", "--now", "yesterday", "--out", filepath.Join(dir, "c")},
	} {
		err := newApp().Run(context.Background(), append([]string{"feedback-dashboard", "--api", srv.URL}, args...))
		assert.Error(t, err, args)
	}
}

func TestShowCommand_UnreachableAPIStillRenders(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newApp().Run(context.Background(), []string{"feedback-dashboard", "--api", url, "show", "--window", "daily"})

	assert.NoError(t, err)
}

func TestSubmitCommand(t *testing.T) {
	srv := feedbackAPI(t)

	err := newApp().Run(context.Background(), []string{
		"feedback-dashboard", "--api", srv.URL,
		"submit", "--location", "Departure", "--rating", "Average", "--reasons", "Long walk",
	})

	assert.NoError(t, err)
}

func TestSubmitCommand_RequiresFields(t *testing.T) {
	srv := feedbackAPI(t)

	err := newApp().Run(context.Background(), []string{"feedback-dashboard", "--api", srv.URL, "submit", "--location", "Departure"})

	assert.Error(t, err)
}
