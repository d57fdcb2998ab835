package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestBuildPaginationFromOffset(t *testing.T) {
	tests := []struct {
		name            string
		total           int64
		offset, limit   int
		wantPage        int
		wantTotalPages  int
		wantHasNext     bool
		wantHasPrev     bool
	}{
		{"first page", 100, 0, 20, 1, 5, true, false},
		{"middle page", 100, 40, 20, 3, 5, true, true},
		{"last page", 100, 80, 20, 5, 5, false, true},
		{"empty set still one page", 0, 0, 20, 1, 1, false, false},
		{"zero limit falls back", 50, 0, 0, 1, 3, true, false},
		{"uneven tail", 25, 20, 10, 3, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPaginationFromOffset(tt.total, tt.offset, tt.limit)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantTotalPages)
			}
			if got.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", got.HasNext, tt.wantHasNext)
			}
			if got.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", got.HasPrev, tt.wantHasPrev)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 10)
	if p.Page != 2 || p.PerPage != 10 || p.TotalPages != 5 {
		t.Errorf("unexpected pagination: %+v", p)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("expected both HasNext and HasPrev, got %+v", p)
	}
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "/items", 1, 20, 0},
		{"explicit", "/items?page=3&per_page=10", 3, 10, 20},
		{"limit alias", "/items?limit=5", 1, 5, 0},
		{"per_page capped", "/items?per_page=500", 1, 100, 0},
		{"negative page clamped", "/items?page=-2", 1, 20, 0},
		{"garbage falls back", "/items?page=abc&per_page=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			resp.Body.Close()

			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage || got.Offset != tt.wantOffset {
				t.Errorf("paging = %+v, want page=%d perPage=%d offset=%d",
					got, tt.wantPage, tt.wantPerPage, tt.wantOffset)
			}
		})
	}
}

func TestEnvelopeShape(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return JsonOK(c, "fetched", fiber.Map{"value": 7})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusNotFound, "Thing not found")
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return JsonValidationError(c, map[string][]string{"name": {"name is required"}})
	})

	t.Run("success envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var out struct {
			Success bool            `json:"success"`
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !out.Success || out.Message != "fetched" || len(out.Data) == 0 {
			t.Errorf("unexpected envelope: %s", body)
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var out struct {
			Success   bool   `json:"success"`
			Message   string `json:"message"`
			ErrorCode string `json:"error_code"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Success || out.Message != "Thing not found" || out.ErrorCode == "" {
			t.Errorf("unexpected envelope: %s", body)
		}
	})

	t.Run("validation envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/invalid", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var out struct {
			Success bool                `json:"success"`
			Errors  map[string][]string `json:"errors"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Success || len(out.Errors["name"]) != 1 {
			t.Errorf("unexpected envelope: %s", body)
		}
	})
}
