package projects_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/pkg/testsupport"
)

func newService(t *testing.T) projects.Service {
	t.Helper()
	return projects.NewService(projects.NewBunProjectRepository(testsupport.NewBunDB(t)))
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreateProjectDefaults(t *testing.T) {
	svc := newService(t)
	view, err := svc.Create(context.Background(), projects.CreateInput{
		Name: bilingual.Text{En: "E-Tajer Project", Ar: "مشروع إي تاجر"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if view.IsFeatured || !view.IsActive || view.Order != 0 {
		t.Fatalf("unexpected defaults featured=%v active=%v order=%d", view.IsFeatured, view.IsActive, view.Order)
	}
	if view.Objectives.En == nil || len(view.Objectives.En) != 0 || len(view.Objectives.Ar) != 0 {
		t.Fatalf("expected empty objectives, got %#v", view.Objectives)
	}
	if view.Benefits.En == nil || len(view.Benefits.En) != 0 {
		t.Fatalf("expected empty benefits fallback, got %#v", view.Benefits)
	}
	if view.Images == nil || len(view.Images) != 0 {
		t.Fatalf("expected empty images, got %#v", view.Images)
	}
}

func TestCreateProjectStoresLists(t *testing.T) {
	svc := newService(t)
	objectives := bilingual.List{
		En: []string{"Enable digital transformation", "Support SMEs"},
		Ar: []string{"تمكين التحول الرقمي"},
	}
	view, err := svc.Create(context.Background(), projects.CreateInput{
		Name:       bilingual.Text{En: "E-Tajer"},
		Objectives: objectives,
		Benefits:   bilingual.List{Ar: []string{"فائدة"}},
		Images:     []bilingual.Image{{URL: "https://images.example.org/etajer.jpg"}},
		IsFeatured: boolPtr(true),
		Order:      intPtr(1),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !reflect.DeepEqual(view.Objectives, bilingual.Items{
		En: []any{"Enable digital transformation", "Support SMEs"},
		Ar: []any{"تمكين التحول الرقمي"},
	}) {
		t.Fatalf("unexpected objectives %#v", view.Objectives)
	}
	if len(view.Benefits.En) != 0 || !reflect.DeepEqual(view.Benefits.Ar, []any{"فائدة"}) {
		t.Fatalf("unexpected benefits %#v", view.Benefits)
	}
	if len(view.Images) != 1 || !view.IsFeatured || view.Order != 1 {
		t.Fatalf("unexpected project %#v", view)
	}
}

func TestListProjectsFiltersAndOrders(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, input := range []projects.CreateInput{
		{Name: bilingual.Text{En: "Third"}, Order: intPtr(3)},
		{Name: bilingual.Text{En: "First"}, Order: intPtr(1), IsFeatured: boolPtr(true)},
		{Name: bilingual.Text{En: "Second"}, Order: intPtr(2)},
		{Name: bilingual.Text{En: "Draft"}, Order: intPtr(0), IsActive: boolPtr(false)},
	} {
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	public, err := svc.List(ctx, projects.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, view := range public {
		names = append(names, view.Name.En)
	}
	if !reflect.DeepEqual(names, []string{"First", "Second", "Third"}) {
		t.Fatalf("unexpected order %v", names)
	}

	featured, err := svc.List(ctx, projects.ListOptions{FeaturedOnly: true})
	if err != nil {
		t.Fatalf("List(featured) error = %v", err)
	}
	if len(featured) != 1 || featured[0].Name.En != "First" {
		t.Fatalf("unexpected featured list %#v", featured)
	}
}

func TestUpdateProjectIsPartial(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, projects.CreateInput{
		Name:       bilingual.Text{En: "E-Tajer", Ar: "إي تاجر"},
		Objectives: bilingual.List{En: []string{"one"}, Ar: []string{"واحد"}},
		Order:      intPtr(4),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, projects.UpdateInput{
		Objectives: &bilingual.List{En: []string{"one", "two"}},
		Benefits:   &bilingual.List{En: []string{"reach"}},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !reflect.DeepEqual(updated.Objectives.En, []any{"one", "two"}) {
		t.Fatalf("unexpected english objectives %#v", updated.Objectives.En)
	}
	if !reflect.DeepEqual(updated.Objectives.Ar, []any{"واحد"}) {
		t.Fatalf("expected arabic objectives kept, got %#v", updated.Objectives.Ar)
	}
	if !reflect.DeepEqual(updated.Benefits.En, []any{"reach"}) {
		t.Fatalf("unexpected benefits %#v", updated.Benefits.En)
	}
	if updated.Name.Ar != "إي تاجر" || updated.Order != 4 {
		t.Fatalf("expected untouched fields kept, got %#v", updated)
	}
}

func TestProjectOrderValidation(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), projects.CreateInput{Order: intPtr(-2)})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectNotFound(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	id := uuid.New()
	if _, err := svc.Get(ctx, id); !errors.Is(err, projects.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, projects.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound on delete, got %v", err)
	}
}

func TestTransformFallsBackOnCorruptLists(t *testing.T) {
	corrupt := "[oops"
	view := projects.Transform(&projects.Project{
		ObjectivesEn: "not json",
		ObjectivesAr: "",
		BenefitsEn:   &corrupt,
		Images:       &corrupt,
	})
	if view.Objectives.En == nil || len(view.Objectives.En) != 0 || len(view.Objectives.Ar) != 0 {
		t.Fatalf("expected empty objectives, got %#v", view.Objectives)
	}
	if view.Benefits.En == nil || len(view.Benefits.En) != 0 {
		t.Fatalf("expected empty benefits, got %#v", view.Benefits)
	}
	if view.Images == nil || len(view.Images) != 0 {
		t.Fatalf("expected empty images, got %#v", view.Images)
	}
}

func TestTransformKeepsNonStringListElements(t *testing.T) {
	objectives := `[{"title":"Trade","weight":2},"Export"]`
	benefits := `[1,2]`
	view := projects.Transform(&projects.Project{ObjectivesEn: objectives, BenefitsAr: &benefits})
	want := []any{map[string]any{"title": "Trade", "weight": float64(2)}, "Export"}
	if !reflect.DeepEqual(view.Objectives.En, want) {
		t.Fatalf("unexpected objectives %#v", view.Objectives.En)
	}
	if !reflect.DeepEqual(view.Benefits.Ar, []any{float64(1), float64(2)}) {
		t.Fatalf("unexpected benefits %#v", view.Benefits.Ar)
	}
}
