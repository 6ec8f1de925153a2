package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

// memStore is an in-memory Store for handler tests. It knows a single
// valid user and applies the same Merge the real repository does.
type memStore struct {
	userID  string
	records map[string]Record
}

func newMemStore(userID string) *memStore {
	return &memStore{userID: userID, records: make(map[string]Record)}
}

func (s *memStore) check(userID string) error {
	if userID != s.userID {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *memStore) Get(_ context.Context, userID, cityID string) (*Record, error) {
	if err := s.check(userID); err != nil {
		return nil, err
	}
	rec, ok := s.records[cityID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *memStore) Upsert(_ context.Context, userID, cityID string, p Patch) (Record, error) {
	if err := s.check(userID); err != nil {
		return Record{}, err
	}
	var existing *Record
	if rec, ok := s.records[cityID]; ok {
		existing = &rec
	}
	merged := Merge(existing, p, time.Now().UTC())
	s.records[cityID] = merged
	return merged, nil
}

func (s *memStore) Delete(_ context.Context, userID, cityID string) error {
	if err := s.check(userID); err != nil {
		return err
	}
	delete(s.records, cityID)
	return nil
}

func (s *memStore) ListAll(_ context.Context, userID string) (map[string]Record, error) {
	if err := s.check(userID); err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out, nil
}

func newTestApp(store Store, userID string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	if userID != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			return c.Next()
		})
	}

	h := NewHandler(store)
	app.Get("/api/budget", h.ListBudgets)
	app.Get("/api/budget/:cityId", h.GetBudget)
	app.Post("/api/budget/:cityId", h.SaveBudget)
	app.Delete("/api/budget/:cityId", h.DeleteBudget)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var fields map[string]json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return res.StatusCode, fields
}

func TestBudgetEndToEnd(t *testing.T) {
	app := newTestApp(newMemStore("u1"), "u1")

	// Missing record reads as null, not an error.
	status, fields := doJSON(t, app, http.MethodGet, "/api/budget/city1", nil)
	if status != http.StatusOK {
		t.Fatalf("GET before save status = %d, want 200", status)
	}
	if string(fields["budget"]) != "null" {
		t.Errorf("budget before save = %s, want null", fields["budget"])
	}

	status, fields = doJSON(t, app, http.MethodPost, "/api/budget/city1", map[string]any{
		"foodPrice":  5000,
		"hotelPrice": 8000,
		"totalPrice": 16000,
		"destinations": []map[string]any{
			{"name": "Museum", "price": 3000, "link": "http://x", "isBlurred": false, "_id": "d1"},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("POST status = %d: %v", status, fields)
	}

	status, fields = doJSON(t, app, http.MethodGet, "/api/budget/city1", nil)
	if status != http.StatusOK {
		t.Fatalf("GET status = %d", status)
	}
	var rec Record
	if err := json.Unmarshal(fields["budget"], &rec); err != nil {
		t.Fatalf("decode budget: %v", err)
	}
	if rec.TotalPrice != 16000 {
		t.Errorf("TotalPrice = %v, want the stored 16000", rec.TotalPrice)
	}
	if len(rec.Destinations) != 1 || rec.Destinations[0].ID != "d1" {
		t.Errorf("destinations = %+v", rec.Destinations)
	}

	status, fields = doJSON(t, app, http.MethodGet, "/api/budget", nil)
	if status != http.StatusOK {
		t.Fatalf("GET list status = %d", status)
	}
	var all map[string]Record
	if err := json.Unmarshal(fields["budgets"], &all); err != nil {
		t.Fatalf("decode budgets: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("budget count = %d, want 1", len(all))
	}

	// Delete twice: both succeed.
	for i := 0; i < 2; i++ {
		status, _ = doJSON(t, app, http.MethodDelete, "/api/budget/city1", nil)
		if status != http.StatusOK {
			t.Fatalf("DELETE #%d status = %d, want 200", i+1, status)
		}
	}

	status, fields = doJSON(t, app, http.MethodGet, "/api/budget/city1", nil)
	if status != http.StatusOK || string(fields["budget"]) != "null" {
		t.Errorf("after delete: status = %d, budget = %s", status, fields["budget"])
	}
}

func TestBudgetRejectsNegativePrice(t *testing.T) {
	app := newTestApp(newMemStore("u1"), "u1")

	status, _ := doJSON(t, app, http.MethodPost, "/api/budget/city1", map[string]any{
		"foodPrice": -100,
	})
	if status != http.StatusBadRequest {
		t.Errorf("negative price status = %d, want 400", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/budget/city1", map[string]any{
		"destinations": []map[string]any{
			{"name": "A", "price": 1, "_id": "d1"},
			{"name": "B", "price": 2, "_id": "d1"},
		},
	})
	if status != http.StatusBadRequest {
		t.Errorf("duplicate id status = %d, want 400", status)
	}
}

func TestBudgetUnauthorized(t *testing.T) {
	app := newTestApp(newMemStore("u1"), "")

	status, _ := doJSON(t, app, http.MethodGet, "/api/budget/city1", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestBudgetUnknownUserIs404(t *testing.T) {
	app := newTestApp(newMemStore("u1"), "ghost")

	status, _ := doJSON(t, app, http.MethodGet, "/api/budget/city1", nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}
