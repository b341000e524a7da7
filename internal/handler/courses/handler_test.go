package courses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dilzzzz/bagdag/internal/model/course"
)

type fakeFinder struct {
	courses []course.Course
	err     error
}

func (f *fakeFinder) FindCourses(context.Context, string) ([]course.Course, error) {
	return f.courses, f.err
}

func setupRouter(finder Finder) *chi.Mux {
	r := chi.NewRouter()
	New(finder).RegisterRoutes(r)
	return r
}

func TestFindCoursesReturnsResults(t *testing.T) {
	r := setupRouter(&fakeFinder{courses: []course.Course{
		{Name: "Pebble Beach Golf Links", Description: "Iconic clifftop course.", Features: []string{"ocean views"}},
	}})

	req := httptest.NewRequest(http.MethodGet, "/courses?location=Monterey", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Courses []course.Course `json:"courses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.Courses) != 1 || body.Courses[0].Name != "Pebble Beach Golf Links" {
		t.Fatalf("unexpected courses: %+v", body.Courses)
	}
}

func TestFindCoursesMissingLocation(t *testing.T) {
	r := setupRouter(&fakeFinder{})

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestFindCoursesLookupFailure(t *testing.T) {
	r := setupRouter(&fakeFinder{err: errors.New("malformed result")})

	req := httptest.NewRequest(http.MethodGet, "/courses?location=Nowhere", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestFindCoursesUnavailable(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/courses?location=Anywhere", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
