package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/identity"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

//go:embed data/*.json
var dataFS embed.FS

// ErrUntypedContent reports seed copy for a known section that no longer
// decodes into that section's typed shape.
var ErrUntypedContent = errors.New("seed: section content does not match its typed shape")

type sectionRecord struct {
	Section string               `json:"section"`
	Order   int                  `json:"order"`
	Content bilingual.RawPayload `json:"content"`
}

type projectRecord struct {
	Name        bilingual.Text    `json:"name"`
	Description bilingual.Text    `json:"description"`
	Objectives  bilingual.List    `json:"objectives"`
	Benefits    bilingual.List    `json:"benefits"`
	Images      []bilingual.Image `json:"images"`
	IsFeatured  bool              `json:"isFeatured"`
	IsActive    bool              `json:"isActive"`
	Order       int               `json:"order"`
}

type eventRecord struct {
	Title       bilingual.Text `json:"title"`
	Description bilingual.Text `json:"description"`
	Location    bilingual.Text `json:"location"`
	Date        string         `json:"date"`
	ImageURL    string         `json:"imageUrl"`
	IsFeatured  bool           `json:"isFeatured"`
	IsActive    bool           `json:"isActive"`
}

// Report summarises what a seeding run created.
type Report struct {
	AdminCreated    bool
	SectionsCreated []string
	ProjectsCreated int
	EventsCreated   int
}

// Seeder bootstraps a fresh database with the admin account and the
// federation's published copy. Every step skips data that already exists.
type Seeder struct {
	Auth     auth.Service
	Sections sections.Service
	Projects projects.Service
	Events   events.Service
	Logger   interfaces.Logger
}

func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report
	logger := s.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	if s.Auth != nil {
		created, err := s.seedAdmin(ctx)
		if err != nil {
			return report, err
		}
		report.AdminCreated = created
	}
	if s.Sections != nil {
		names, err := s.seedSections(ctx)
		if err != nil {
			return report, err
		}
		report.SectionsCreated = names
	}
	if s.Projects != nil {
		count, err := s.seedProjects(ctx)
		if err != nil {
			return report, err
		}
		report.ProjectsCreated = count
	}
	if s.Events != nil {
		count, err := s.seedEvents(ctx)
		if err != nil {
			return report, err
		}
		report.EventsCreated = count
	}

	logger.Info("seed.completed",
		"admin_created", report.AdminCreated,
		"sections_created", report.SectionsCreated,
		"projects_created", report.ProjectsCreated,
		"events_created", report.EventsCreated,
	)
	return report, nil
}

func (s *Seeder) seedAdmin(ctx context.Context) (bool, error) {
	_, err := s.Auth.Setup(ctx)
	if errors.Is(err, auth.ErrAdminExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (s *Seeder) seedSections(ctx context.Context) ([]string, error) {
	var records []sectionRecord
	if err := load("sections.json", &records); err != nil {
		return nil, err
	}

	created := []string{}
	for _, record := range records {
		if err := checkTyped(record); err != nil {
			return created, err
		}
		order := record.Order
		_, err := s.Sections.CreateSection(ctx, sections.CreateInput{
			ID:      identity.SectionUUID(record.Section),
			Section: record.Section,
			Content: sections.Content{En: record.Content.En, Ar: record.Content.Ar},
			Order:   &order,
		})
		if errors.Is(err, sections.ErrSectionExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed section %s: %w", record.Section, err)
		}
		created = append(created, record.Section)
	}
	return created, nil
}

func (s *Seeder) seedProjects(ctx context.Context) (int, error) {
	existing, err := s.Projects.List(ctx, projects.ListOptions{IncludeInactive: true})
	if err != nil {
		return 0, fmt.Errorf("seed projects: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	var records []projectRecord
	if err := load("projects.json", &records); err != nil {
		return 0, err
	}
	for i, record := range records {
		featured, active, order := record.IsFeatured, record.IsActive, record.Order
		_, err := s.Projects.Create(ctx, projects.CreateInput{
			ID:          identity.ProjectUUID(record.Name.En),
			Name:        record.Name,
			Description: record.Description,
			Objectives:  record.Objectives,
			Benefits:    record.Benefits,
			Images:      record.Images,
			IsFeatured:  &featured,
			IsActive:    &active,
			Order:       &order,
		})
		if err != nil {
			return i, fmt.Errorf("seed project %q: %w", record.Name.En, err)
		}
	}
	return len(records), nil
}

func (s *Seeder) seedEvents(ctx context.Context) (int, error) {
	existing, err := s.Events.List(ctx, events.ListOptions{IncludeInactive: true, Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("seed events: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	var records []eventRecord
	if err := load("events.json", &records); err != nil {
		return 0, err
	}
	for i, record := range records {
		date, err := events.ParseDate(record.Date)
		if err != nil {
			return i, fmt.Errorf("seed event %q: %w", record.Title.En, err)
		}
		featured, active := record.IsFeatured, record.IsActive
		_, err = s.Events.Create(ctx, events.CreateInput{
			ID:          identity.EventUUID(record.Title.En, date),
			Title:       record.Title,
			Description: record.Description,
			Location:    record.Location,
			Date:        date,
			ImageURL:    record.ImageURL,
			IsFeatured:  &featured,
			IsActive:    &active,
		})
		if err != nil {
			return i, fmt.Errorf("seed event %q: %w", record.Title.En, err)
		}
	}
	return len(records), nil
}

// checkTyped decodes both halves of a known section into its typed variant.
func checkTyped(record sectionRecord) error {
	if !slices.Contains(sections.KnownKinds(), sections.Kind(record.Section)) {
		return nil
	}
	en, ar := sections.Variants(&sections.Section{
		Section:   record.Section,
		ContentEn: string(record.Content.En),
		ContentAr: string(record.Content.Ar),
	})
	if _, raw := en.(sections.RawContent); raw {
		return fmt.Errorf("%w: %s (en)", ErrUntypedContent, record.Section)
	}
	if _, raw := ar.(sections.RawContent); raw {
		return fmt.Errorf("%w: %s (ar)", ErrUntypedContent, record.Section)
	}
	return nil
}

func load(name string, target any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return nil
}
