package handlers

import (
	"net/http"
	"strings"
	"testing"

	"dianabeauty/internal/models"
)

type catalogBody struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestCatalog(t *testing.T) {
	e := newTestEnv(t)
	e.addInventoryImage(t, "Parfum Homme/a.jpg")
	e.addInventoryImage(t, "Parfum Homme/b.jpg")
	e.addInventoryImage(t, "Parfum Femme/c.png")
	e.addInventoryImage(t, "skincare/nettoyants/Eaux micellaires/d.png")

	expectStatus(t, e.doJSON(t, http.MethodPost, "/api/save-product-override",
		map[string]any{"id": "homme-1", "name": "Oud Royal", "price": 32000}), http.StatusOK)
	expectStatus(t, e.doJSON(t, http.MethodPost, "/api/hidden-products",
		map[string]any{"productId": "homme-2", "hidden": true}), http.StatusOK)
	e.createProduct(t, map[string]string{"id": "srv-1", "name": "Server", "price": "5", "category": "mixte"}, 1)
	expectStatus(t, e.doJSON(t, http.MethodPut, "/api/local-overrides", models.ProductData{
		CustomProducts:   []models.CustomProduct{{ID: "loc-1", Name: "Local", Category: "femme", CoverImage: "/images/x.png"}},
		HiddenProductIDs: []string{"femme-1"},
	}), http.StatusOK)

	rr := e.do(t, http.MethodGet, "/api/catalog", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var body catalogBody
	decode(t, rr, &body)

	got := strings.Join(productIDs(body.Products), ",")
	if got != "loc-1,srv-1,homme-1,skincare-1" {
		t.Fatalf("ids = %s", got)
	}
	if body.Count != 4 {
		t.Errorf("count = %d", body.Count)
	}
	oud := body.Products[2]
	if oud.Name != "Oud Royal" || oud.Price != 32000 || oud.Image != "/images/Parfum Homme/a.jpg" {
		t.Errorf("homme-1 = %+v", oud)
	}
	skin := body.Products[3]
	if skin.Subcategory != "nettoyants" || skin.SubSubcategory != "Eaux micellaires" {
		t.Errorf("skincare-1 = %+v", skin)
	}
	if !body.Products[0].IsCustom || !body.Products[1].IsCustom || oud.IsCustom {
		t.Error("isCustom flags wrong")
	}
}

func TestCatalog_Filter(t *testing.T) {
	e := newTestEnv(t)
	e.addInventoryImage(t, "Parfum Homme/a.jpg")
	e.addInventoryImage(t, "skincare/nettoyants/Eaux micellaires/d.png")
	e.addInventoryImage(t, "skincare/traitements/Sérums/e.png")

	tests := []struct {
		query string
		want  string
	}{
		{"?category=homme", "homme-1"},
		{"?category=skincare", "skincare-1,skincare-2"},
		{"?category=skincare&subcategory=traitements", "skincare-2"},
		{"?category=skincare&subcategory=nettoyants&subSubcategory=Eaux+micellaires", "skincare-1"},
		{"?category=femme", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := e.do(t, http.MethodGet, "/api/catalog"+tt.query, nil, "")
			expectStatus(t, rr, http.StatusOK)
			var body catalogBody
			decode(t, rr, &body)
			if got := strings.Join(productIDs(body.Products), ","); got != tt.want {
				t.Errorf("ids = %q, want %q", got, tt.want)
			}
			if body.Products == nil {
				t.Error("products must be an array, not null")
			}
		})
	}
}

func TestCatalog_StoreUnreadable(t *testing.T) {
	e := newTestEnv(t)
	writeTo(t, e.data.Path(), "// markers gone\n")

	rr := e.do(t, http.MethodGet, "/api/catalog", nil, "")
	expectStatus(t, rr, http.StatusInternalServerError)
}

func TestLocalOverrides(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodGet, "/api/local-overrides", nil, "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"data":null`) {
		t.Errorf("body = %s", rr.Body.String())
	}

	rr = e.do(t, http.MethodPut, "/api/local-overrides", strings.NewReader("not json"), "application/json")
	expectStatus(t, rr, http.StatusBadRequest)

	rr = e.doJSON(t, http.MethodPut, "/api/local-overrides", map[string]any{"hiddenProductIds": []string{"homme-4"}})
	expectStatus(t, rr, http.StatusOK)

	rr = e.do(t, http.MethodGet, "/api/local-overrides", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var resp struct {
		Data *models.ProductData `json:"data"`
	}
	decode(t, rr, &resp)
	if resp.Data == nil || len(resp.Data.HiddenProductIDs) != 1 || resp.Data.CustomProducts == nil {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestCatalog_UploadIntoSubcategoryFolder(t *testing.T) {
	e := newTestEnv(t)

	rr := e.doMultipart(t, http.MethodPost, "/api/upload-images",
		map[string]string{"images": `[{"category":"skincare","subcategory":"nettoyants"}]`},
		"files", []upload{{name: "gel.png", data: pngBytes(t)}})
	expectStatus(t, rr, http.StatusOK)

	rr = e.do(t, http.MethodGet, "/api/catalog?category=skincare&subcategory=nettoyants", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var body catalogBody
	decode(t, rr, &body)
	if len(body.Products) != 1 {
		t.Fatalf("products = %+v", body.Products)
	}
	p := body.Products[0]
	if p.Subcategory != "nettoyants" || p.SubSubcategory != "" || p.Name != "nettoyants 1" {
		t.Errorf("product = %+v", p)
	}
}
