package sections

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemorySectionRepository returns a concurrency-safe in-memory repository.
func NewMemorySectionRepository() SectionRepository {
	return &memorySectionRepository{
		byID:      make(map[uuid.UUID]*Section),
		bySection: make(map[string]uuid.UUID),
	}
}

type memorySectionRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*Section
	bySection map[string]uuid.UUID
}

func (m *memorySectionRepository) GetBySection(_ context.Context, section string) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySection[section]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: section}
	}
	return cloneSection(m.byID[id]), nil
}

func (m *memorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: id.String()}
	}
	return cloneSection(record), nil
}

func (m *memorySectionRepository) List(_ context.Context, opts ListOptions) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Section, 0, len(m.byID))
	for _, record := range m.byID {
		if !opts.IncludeInactive && !record.IsActive {
			continue
		}
		out = append(out, cloneSection(record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order == out[j].Order {
			return out[i].Section < out[j].Section
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (m *memorySectionRepository) Create(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySection[record.Section]; exists {
		return nil, ErrSectionExists
	}
	m.insertLocked(record)
	return cloneSection(record), nil
}

func (m *memorySectionRepository) Upsert(_ context.Context, record *Section, fields UpsertFields) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, exists := m.bySection[record.Section]
	if !exists {
		m.insertLocked(record)
		return cloneSection(record), nil
	}

	current := m.byID[id]
	current.ContentEn = record.ContentEn
	current.ContentAr = record.ContentAr
	current.UpdatedAt = record.UpdatedAt
	if fields.Images {
		current.Images = cloneString(record.Images)
	}
	if fields.IsActive {
		current.IsActive = record.IsActive
	}
	if fields.Order {
		current.Order = record.Order
	}
	return cloneSection(current), nil
}

func (m *memorySectionRepository) Update(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: record.ID.String()}
	}
	if current.Section != record.Section {
		if _, taken := m.bySection[record.Section]; taken {
			return nil, ErrSectionExists
		}
		delete(m.bySection, current.Section)
		m.bySection[record.Section] = record.ID
	}
	m.byID[record.ID] = cloneSection(record)
	return cloneSection(record), nil
}

func (m *memorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(m.bySection, record.Section)
	delete(m.byID, id)
	return nil
}

func (m *memorySectionRepository) insertLocked(record *Section) {
	stored := cloneSection(record)
	m.byID[stored.ID] = stored
	m.bySection[stored.Section] = stored.ID
}

func cloneSection(src *Section) *Section {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Images = cloneString(src.Images)
	return &cloned
}

func cloneString(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
