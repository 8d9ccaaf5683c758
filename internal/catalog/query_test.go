package catalog

import (
	"reflect"
	"testing"

	"dianabeauty/internal/inventory"
	"dianabeauty/internal/models"
)

func TestFilter(t *testing.T) {
	products := Assemble(Context{Base: BaseProducts(testInventory())})

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "all", q: Query{}, want: []string{"homme-1", "homme-2", "femme-1", "skincare-1", "skincare-2", "skincare-3"}},
		{name: "category", q: Query{Category: "homme"}, want: []string{"homme-1", "homme-2"}},
		{name: "subcategory", q: Query{Category: "skincare", Subcategory: inventory.DefaultSkincareSubcategory}, want: []string{"skincare-2"}},
		{name: "sub-subcategory", q: Query{SubSubcategory: "Sérums"}, want: []string{"skincare-3"}},
		{name: "no match", q: Query{Category: "mixte"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(products, tt.q)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverImage(t *testing.T) {
	products := Assemble(Context{Base: BaseProducts(testInventory())})
	if got := CoverImage(products, "femme"); got != "/images/Parfum Femme/f.png" {
		t.Errorf("CoverImage(femme) = %q", got)
	}
	if got := CoverImage(products, "mixte"); got != "" {
		t.Errorf("CoverImage(mixte) = %q, want empty", got)
	}
	if got := len(ByCategory(products, "homme")); got != 2 {
		t.Errorf("ByCategory(homme) = %d products", got)
	}
}

func TestSkincareHelpers(t *testing.T) {
	products := BaseProducts(testInventory())
	products = append(products, models.Product{ID: "skincare-4", Category: "skincare", Subcategory: "nettoyants", SubSubcategory: "Huiles nettoyantes"})

	if got, want := SkincareSubcategories(products), []string{"nettoyants", "cremes hydratantes", "traitements"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SkincareSubcategories = %v, want %v", got, want)
	}
	if got, want := SkincareSubSubcategories(products, ""), []string{"Eaux micellaires", "Sérums", "Huiles nettoyantes"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SkincareSubSubcategories = %v, want %v", got, want)
	}
	if got, want := SkincareSubSubcategories(products, "nettoyants"), []string{"Eaux micellaires", "Huiles nettoyantes"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SkincareSubSubcategories(nettoyants) = %v, want %v", got, want)
	}
}

func TestQueryKey(t *testing.T) {
	a := Query{Category: "skincare", Subcategory: "x"}.Key()
	b := Query{Category: "skincare", SubSubcategory: "x"}.Key()
	if a == b {
		t.Errorf("distinct queries share key %q", a)
	}
}
