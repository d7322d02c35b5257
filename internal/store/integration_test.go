package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"infogen/internal/models"
)

// TestBrandProjectLifecycle exercises the stores against a real database:
// a brand referenced by a project cannot be deleted until the project is gone.
func TestBrandProjectLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	brands := NewBrandStore(db)
	projects := NewProjectStore(db)

	scope := UserScope("it_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		db.Exec("DELETE FROM projects WHERE user_id = $1", scope.UserID)
		db.Exec("DELETE FROM brands WHERE user_id = $1", scope.UserID)
	})

	brand, err := brands.Create(ctx, scope, &models.Brand{
		Name: "Acme", ColorPalette: []string{"#111111"}, HeadingFont: "Poppins", BodyFont: "Inter",
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	project, err := projects.Create(ctx, scope, &models.Project{
		Title: "Launch", Content: "Sales grew 40%", TemplateID: "modern-stats", BrandID: &brand.ID,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if string(project.DesignData) != "{}" {
		t.Errorf("design data: got %s, want {}", project.DesignData)
	}

	if err := brands.Delete(ctx, scope, brand.ID); err == nil {
		t.Fatal("expected precondition failure deleting a brand in use")
	}

	// Another user cannot see the project.
	other, err := projects.FindByID(ctx, UserScope("someone_else"), project.ID)
	if err != nil {
		t.Fatalf("find as other user: %v", err)
	}
	if other != nil {
		t.Error("project leaked across scopes")
	}

	if err := projects.Delete(ctx, scope, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if err := brands.Delete(ctx, scope, brand.ID); err != nil {
		t.Fatalf("delete brand after project removal: %v", err)
	}

	list, err := brands.List(ctx, scope)
	if err != nil {
		t.Fatalf("list brands: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no brands left, got %d", len(list))
	}
}
