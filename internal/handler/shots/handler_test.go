package shots

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	shotsservice "github.com/dilzzzz/bagdag/internal/service/shots"
)

func setupRouter() (*chi.Mux, *shotsservice.Tracker) {
	tracker := shotsservice.NewTracker()
	handler := New(tracker)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, tracker
}

func TestLogShotValid(t *testing.T) {
	r, _ := setupRouter()
	payload, _ := json.Marshal(map[string]any{
		"club":     "Driver",
		"distance": 265,
		"result":   "Fairway Hit",
	})

	req := httptest.NewRequest(http.MethodPost, "/shots", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLogShotInvalidClub(t *testing.T) {
	r, _ := setupRouter()
	payload, _ := json.Marshal(map[string]any{
		"club":     "Croquet Mallet",
		"distance": 100,
		"result":   "Fairway Hit",
	})

	req := httptest.NewRequest(http.MethodPost, "/shots", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r, tracker := setupRouter()

	if _, err := tracker.Log("Driver", 260, "Fairway Hit"); err != nil {
		t.Fatalf("Log err: %v", err)
	}
	if _, err := tracker.Log("Driver", 240, "Missed Left"); err != nil {
		t.Fatalf("Log err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/shots/stats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats struct {
		TotalShots         int     `json:"totalShots"`
		DriverShots        int     `json:"driverShots"`
		AvgDrivingDistance float64 `json:"avgDrivingDistance"`
		FairwayHitPct      float64 `json:"fairwayHitPct"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if stats.TotalShots != 2 || stats.DriverShots != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AvgDrivingDistance != 250 || stats.FairwayHitPct != 50 {
		t.Fatalf("unexpected aggregates: %+v", stats)
	}
}

func TestListShots(t *testing.T) {
	r, tracker := setupRouter()

	if _, err := tracker.Log("Putter", 2, "In the Hole"); err != nil {
		t.Fatalf("Log err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/shots", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Shots []struct {
			Club string `json:"club"`
		} `json:"shots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.Shots) != 1 || body.Shots[0].Club != "Putter" {
		t.Fatalf("unexpected shots: %+v", body.Shots)
	}
}
