package seed_test

import (
	"context"
	"reflect"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/identity"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/internal/seed"
	"github.com/afdei/federation-cms/pkg/testsupport"
)

func newSeeder(t *testing.T) *seed.Seeder {
	t.Helper()
	db := testsupport.NewBunDB(t)
	tokens, err := auth.NewTokenIssuer("seed-secret", 0)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	return &seed.Seeder{
		Auth:     auth.NewService(auth.NewBunUserRepository(db), tokens, auth.WithBcryptCost(bcrypt.MinCost)),
		Sections: sections.NewService(sections.NewBunSectionRepository(db)),
		Projects: projects.NewService(projects.NewBunProjectRepository(db)),
		Events:   events.NewService(events.NewBunEventRepository(db)),
	}
}

func TestRunSeedsFreshDatabase(t *testing.T) {
	seeder := newSeeder(t)
	ctx := context.Background()

	report, err := seeder.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.AdminCreated || report.ProjectsCreated != 1 || report.EventsCreated != 3 {
		t.Fatalf("unexpected report %#v", report)
	}
	wantSections := []string{"hero", "about", "membership", "advisory", "contact"}
	if !reflect.DeepEqual(report.SectionsCreated, wantSections) {
		t.Fatalf("unexpected sections %v", report.SectionsCreated)
	}

	all, err := seeder.Sections.GetAllSections(ctx)
	if err != nil {
		t.Fatalf("GetAllSections() error = %v", err)
	}
	var order []string
	for _, view := range all {
		order = append(order, view.Section)
	}
	if !reflect.DeepEqual(order, wantSections) {
		t.Fatalf("unexpected section order %v", order)
	}

	hero, err := seeder.Sections.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	if hero.Content.Ar["title"] != "الاتحاد العربي للتنمية والتكامل الاقتصادي" {
		t.Fatalf("unexpected arabic hero title %v", hero.Content.Ar["title"])
	}

	advisory, err := seeder.Sections.GetSection(ctx, "advisory")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	typed, ok := sections.DecodeAs[sections.AdvisoryContent](advisory.ContentEn)
	if !ok || len(typed.Bodies) != 4 || typed.Bodies[2].Members != 15 {
		t.Fatalf("unexpected advisory content %#v", typed)
	}

	list, err := seeder.Events.List(ctx, events.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var titles []string
	for _, view := range list {
		titles = append(titles, view.Title.En)
	}
	wantTitles := []string{"Digital Transformation Conference", "Arab Economic Summit 2025", "Youth Entrepreneurship Workshop"}
	if !reflect.DeepEqual(titles, wantTitles) {
		t.Fatalf("unexpected event order %v", titles)
	}

	featured, err := seeder.Projects.List(ctx, projects.ListOptions{FeaturedOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(featured) != 1 || len(featured[0].Objectives.Ar) != 5 || len(featured[0].Benefits.En) != 0 {
		t.Fatalf("unexpected projects %#v", featured)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	seeder := newSeeder(t)
	ctx := context.Background()
	if _, err := seeder.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	hero, err := seeder.Sections.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	edited := map[string]any{"title": "Edited"}
	if _, err := seeder.Sections.UpdateSection(ctx, hero.ID, sections.UpdateInput{
		Content: sections.Content{En: edited},
	}); err != nil {
		t.Fatalf("UpdateSection() error = %v", err)
	}

	report, err := seeder.Run(ctx)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if report.AdminCreated || len(report.SectionsCreated) != 0 || report.ProjectsCreated != 0 || report.EventsCreated != 0 {
		t.Fatalf("expected nothing created, got %#v", report)
	}

	again, err := seeder.Sections.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	if again.Content.En["title"] != "Edited" {
		t.Fatalf("expected edit preserved, got %v", again.Content.En["title"])
	}
}

func TestRunAssignsStableIDs(t *testing.T) {
	ctx := context.Background()
	first, second := newSeeder(t), newSeeder(t)
	for _, seeder := range []*seed.Seeder{first, second} {
		if _, err := seeder.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	hero, err := first.Sections.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	if hero.ID != identity.SectionUUID("hero") {
		t.Fatalf("hero id = %s, want %s", hero.ID, identity.SectionUUID("hero"))
	}
	again, err := second.Sections.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}
	if again.ID != hero.ID {
		t.Fatalf("expected the same hero id in both databases, got %s and %s", hero.ID, again.ID)
	}

	listEvents := func(seeder *seed.Seeder) []string {
		views, err := seeder.Events.List(ctx, events.ListOptions{IncludeInactive: true})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		ids := make([]string, 0, len(views))
		for _, view := range views {
			ids = append(ids, view.ID.String())
		}
		return ids
	}
	if a, b := listEvents(first), listEvents(second); len(a) != 3 || !reflect.DeepEqual(a, b) {
		t.Fatalf("expected matching event ids, got %v and %v", a, b)
	}
}
