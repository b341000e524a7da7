package designer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fakeGenerator struct {
	image string
	err   error
}

func (f *fakeGenerator) GenerateHole(context.Context, string) (string, error) {
	return f.image, f.err
}

func setupRouter(g Generator) *chi.Mux {
	r := chi.NewRouter()
	New(g).RegisterRoutes(r)
	return r
}

func postHole(r *chi.Mux, prompt string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]string{"prompt": prompt})
	req := httptest.NewRequest(http.MethodPost, "/designer/hole", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGenerateHoleSuccess(t *testing.T) {
	r := setupRouter(&fakeGenerator{image: "data:image/jpeg;base64,aGk="})

	resp := postHole(r, "par 3 over a canyon")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["image"] != "data:image/jpeg;base64,aGk=" {
		t.Fatalf("unexpected image: %q", body["image"])
	}
}

func TestGenerateHoleEmptyPrompt(t *testing.T) {
	r := setupRouter(&fakeGenerator{})

	resp := postHole(r, "   ")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGenerateHoleEmptyResult(t *testing.T) {
	r := setupRouter(&fakeGenerator{image: ""})

	resp := postHole(r, "something vague")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestGenerateHoleUnavailable(t *testing.T) {
	r := setupRouter(nil)

	resp := postHole(r, "anything")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
