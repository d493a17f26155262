package testutil

import (
	"testing"

	"github.com/cory-johannsen/passport/internal/catalog"
)

// TwoWorldCatalog returns a catalog of ejecutivo (liderazgo) and social (servicio).
func TwoWorldCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]*catalog.World{
		{ID: "ejecutivo", Keyword: "liderazgo", Title: "Mundo Ejecutivo", Motto: "Liderazgo", Areas: []string{"Dirección"}},
		{ID: "social", Keyword: "servicio", Title: "Mundo Social", Motto: "Servicio", Areas: []string{"Voluntariado"}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return cat
}
