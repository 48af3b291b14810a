package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"airport-feedback/internal/client"
	"airport-feedback/internal/models"
)

func TestList_DecodesRecords(t *testing.T) {
	id := bson.NewObjectID()
	created := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/feedback", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Feedback{
			{ID: id, Location: models.LocationArrivals, Rating: models.RatingGood, Reasons: "Fast", CreatedAt: created},
		})
	}))
	defer srv.Close()

	records, err := client.New(srv.URL+"/").List(context.Background(), time.Time{}, time.Time{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, models.LocationArrivals, records[0].Location)
	assert.True(t, records[0].CreatedAt.Equal(created))
}

func TestList_SendsDateBounds(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 999_000_000, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-06-01T00:00:00Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-06-30T23:59:59.999Z", r.URL.Query().Get("endDate"))
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	records, err := client.New(srv.URL).List(context.Background(), start, end)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).List(context.Background(), time.Time{}, time.Time{})

	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, "Server error", se.Body)
}

func TestList_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).List(context.Background(), time.Time{}, time.Time{})

	assert.Error(t, err)
}

func TestSubmit_PostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, map[string]string{"location": "Departure", "rating": "Average", "reasons": "Long walk"}, in)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Feedback{ID: bson.NewObjectID(), Location: in["location"], Rating: in["rating"], Reasons: in["reasons"]})
	}))
	defer srv.Close()

	fb, err := client.New(srv.URL).Submit(context.Background(), "Departure", "Average", "Long walk")

	require.NoError(t, err)
	assert.False(t, fb.ID.IsZero())
	assert.Equal(t, "Departure", fb.Location)
}

func TestSubmit_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Submit(context.Background(), "Departure", "Average", "")

	var se *client.StatusError
	assert.ErrorAs(t, err, &se)
}
