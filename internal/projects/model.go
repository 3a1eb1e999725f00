package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/afdei/federation-cms/internal/bilingual"
)

// Project stores a federation initiative. Objectives and benefits are JSON
// arrays per language; benefits may be null.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:pr"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	NameEn        string    `bun:"name_en,notnull" json:"nameEn"`
	NameAr        string    `bun:"name_ar,notnull" json:"nameAr"`
	DescriptionEn string    `bun:"description_en,notnull" json:"descriptionEn"`
	DescriptionAr string    `bun:"description_ar,notnull" json:"descriptionAr"`
	ObjectivesEn  string    `bun:"objectives_en,notnull" json:"objectivesEn"`
	ObjectivesAr  string    `bun:"objectives_ar,notnull" json:"objectivesAr"`
	BenefitsEn    *string   `bun:"benefits_en" json:"benefitsEn,omitempty"`
	BenefitsAr    *string   `bun:"benefits_ar" json:"benefitsAr,omitempty"`
	Images        *string   `bun:"images" json:"images,omitempty"`
	IsFeatured    bool      `bun:"is_featured,notnull" json:"isFeatured"`
	IsActive      bool      `bun:"is_active,notnull" json:"isActive"`
	Order         int       `bun:"sort_order,notnull" json:"order"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// View is the nested bilingual response shape.
type View struct {
	LegacyID    uuid.UUID         `json:"_id"`
	ID          uuid.UUID         `json:"id"`
	Name        bilingual.Text    `json:"name"`
	Description bilingual.Text    `json:"description"`
	Objectives  bilingual.Items   `json:"objectives"`
	Benefits    bilingual.Items   `json:"benefits"`
	Images      []bilingual.Image `json:"images"`
	IsFeatured  bool              `json:"isFeatured"`
	IsActive    bool              `json:"isActive"`
	Order       int               `json:"order"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Transform maps a stored project to its response shape. Unreadable list
// columns become empty lists; readable ones keep their elements as stored.
func Transform(project *Project) *View {
	if project == nil {
		return nil
	}
	return &View{
		LegacyID:    project.ID,
		ID:          project.ID,
		Name:        bilingual.Text{En: project.NameEn, Ar: project.NameAr},
		Description: bilingual.Text{En: project.DescriptionEn, Ar: project.DescriptionAr},
		Objectives: bilingual.Items{
			En: bilingual.DecodeList(&project.ObjectivesEn),
			Ar: bilingual.DecodeList(&project.ObjectivesAr),
		},
		Benefits: bilingual.Items{
			En: bilingual.DecodeList(project.BenefitsEn),
			Ar: bilingual.DecodeList(project.BenefitsAr),
		},
		Images:     bilingual.DecodeImages(project.Images),
		IsFeatured: project.IsFeatured,
		IsActive:   project.IsActive,
		Order:      project.Order,
		CreatedAt:  project.CreatedAt,
		UpdatedAt:  project.UpdatedAt,
	}
}

// TransformAll maps every stored project, preserving order.
func TransformAll(records []*Project) []*View {
	out := make([]*View, 0, len(records))
	for _, record := range records {
		out = append(out, Transform(record))
	}
	return out
}
