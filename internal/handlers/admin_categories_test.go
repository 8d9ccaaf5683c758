package handlers

import (
	"net/http"
	"testing"

	"dianabeauty/internal/models"
)

type categoriesResponse struct {
	Success    bool                    `json:"success"`
	Categories []models.CategoryConfig `json:"categories"`
	Category   models.CategoryConfig   `json:"category"`
}

func TestCategoryLifecycle(t *testing.T) {
	e := newTestEnv(t)
	var resp categoriesResponse

	rr := e.doJSON(t, http.MethodPost, "/api/categories", map[string]any{"id": "coffrets", "label": "Coffrets"})
	expectStatus(t, rr, http.StatusOK)
	decode(t, rr, &resp)
	if len(resp.Categories) != 5 || resp.Categories[4].ID != "coffrets" || resp.Categories[4].IsDefault {
		t.Fatalf("categories = %+v", resp.Categories)
	}

	rr = e.doJSON(t, http.MethodPost, "/api/categories", map[string]any{"id": "coffrets", "label": "Encore"})
	expectStatus(t, rr, http.StatusBadRequest)

	rr = e.doJSON(t, http.MethodPut, "/api/categories/coffrets", map[string]any{"label": "Coffrets cadeaux", "description": "Pour les fêtes"})
	expectStatus(t, rr, http.StatusOK)
	decode(t, rr, &resp)
	if resp.Category.Label != "Coffrets cadeaux" || resp.Category.Description != "Pour les fêtes" {
		t.Errorf("category = %+v", resp.Category)
	}

	// A label-less update keeps the label.
	rr = e.doJSON(t, http.MethodPut, "/api/categories/coffrets", map[string]any{"description": ""})
	expectStatus(t, rr, http.StatusOK)
	decode(t, rr, &resp)
	if resp.Category.Label != "Coffrets cadeaux" || resp.Category.Description != "" {
		t.Errorf("category = %+v", resp.Category)
	}

	// In use by a custom product.
	e.createProduct(t, map[string]string{"id": "box-1", "name": "Box", "price": "10", "category": "coffrets"}, 1)
	rr = e.do(t, http.MethodDelete, "/api/categories/coffrets", nil, "")
	expectStatus(t, rr, http.StatusBadRequest)
	if msg := errorOf(t, rr); msg != "This category is still used by a product." {
		t.Errorf("error = %q", msg)
	}

	expectStatus(t, e.do(t, http.MethodDelete, "/api/custom-products/box-1", nil, ""), http.StatusOK)
	rr = e.do(t, http.MethodDelete, "/api/categories/coffrets", nil, "")
	expectStatus(t, rr, http.StatusOK)
	decode(t, rr, &resp)
	if len(resp.Categories) != 4 {
		t.Errorf("categories = %+v", resp.Categories)
	}
}

func TestCategoryGuards(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		target string
		body   map[string]any
		want   int
	}{
		{"create without label", http.MethodPost, "/api/categories", map[string]any{"id": "x"}, http.StatusBadRequest},
		{"create without id", http.MethodPost, "/api/categories", map[string]any{"label": "X"}, http.StatusBadRequest},
		{"create with bad id", http.MethodPost, "/api/categories", map[string]any{"id": "Mes Coffrets", "label": "X"}, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/api/categories/nope", map[string]any{"label": "X"}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/categories/nope", nil, http.StatusNotFound},
		{"delete default", http.MethodDelete, "/api/categories/homme", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := e.doJSON(t, tt.method, tt.target, tt.body)
			expectStatus(t, rr, tt.want)
		})
	}

	data, _ := e.data.Load()
	if len(data.Categories) != 4 {
		t.Errorf("categories changed: %+v", data.Categories)
	}
}

func TestDeleteCategory_BuiltInWithoutFlag(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.data.Update(func(d *models.ProductData) error {
		d.Categories[d.FindCategory("homme")].IsDefault = false
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	rr := e.do(t, http.MethodDelete, "/api/categories/homme", nil, "")
	expectStatus(t, rr, http.StatusBadRequest)

	data, err := e.data.Load()
	if err != nil {
		t.Fatal(err)
	}
	if data.FindCategory("homme") < 0 {
		t.Error("homme was deleted")
	}
}
