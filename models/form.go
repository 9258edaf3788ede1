package models

import (
	"time"

	"gorm.io/datatypes"
)

// Form is a submission intake template owned by a publication. A form may
// carry a reading-period window and a submission cap; current_submission_count
// is only ever moved by the conditional increment in the lifecycle service.
type Form struct {
	FormID                 int        `gorm:"primaryKey;column:form_id" json:"form_id"`
	PublicationID          int        `gorm:"column:publication_id" json:"publication_id"`
	Title                  string     `gorm:"column:title" json:"title"`
	Description            *string    `gorm:"column:description" json:"description,omitempty"`
	IsActive               bool       `gorm:"column:is_active" json:"is_active"`
	ReadingPeriodStart     *time.Time `gorm:"column:reading_period_start" json:"reading_period_start,omitempty"`
	ReadingPeriodEnd       *time.Time `gorm:"column:reading_period_end" json:"reading_period_end,omitempty"`
	SubmissionCap          *int       `gorm:"column:submission_cap" json:"submission_cap,omitempty"`
	CurrentSubmissionCount int        `gorm:"column:current_submission_count" json:"current_submission_count"`
	CreateAt               *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt               *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt               *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Publication *Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
	Fields      []FormField  `gorm:"foreignKey:FormID" json:"fields,omitempty"`
}

// FormField is one descriptor in a form's ordered field sequence. Options and
// accepted extensions are JSON arrays so the builder can stay schema-free.
type FormField struct {
	FieldID            int            `gorm:"primaryKey;column:field_id" json:"field_id"`
	FormID             int            `gorm:"column:form_id" json:"form_id"`
	FieldType          string         `gorm:"column:field_type" json:"field_type"` // text|textarea|select|file|number
	Label              string         `gorm:"column:label" json:"label"`
	Required           bool           `gorm:"column:required" json:"required"`
	Options            datatypes.JSON `gorm:"column:options;type:json" json:"options,omitempty"`
	AcceptedExtensions datatypes.JSON `gorm:"column:accepted_extensions;type:json" json:"accepted_extensions,omitempty"`
	MaxLength          *int           `gorm:"column:max_length" json:"max_length,omitempty"`
	DisplayOrder       int            `gorm:"column:display_order" json:"display_order"`
	CreateAt           *time.Time     `gorm:"column:create_at" json:"create_at"`
	UpdateAt           *time.Time     `gorm:"column:update_at" json:"update_at"`
	DeleteAt           *time.Time     `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// IsOpenAt reports whether the form's reading period covers t. A missing
// window bound means that side is always open.
func (f *Form) IsOpenAt(t time.Time) bool {
	if f.ReadingPeriodStart != nil && t.Before(*f.ReadingPeriodStart) {
		return false
	}
	if f.ReadingPeriodEnd != nil && t.After(*f.ReadingPeriodEnd) {
		return false
	}
	return true
}

// IsFull reports whether the submission cap has been reached.
func (f *Form) IsFull() bool {
	return f.SubmissionCap != nil && f.CurrentSubmissionCount >= *f.SubmissionCap
}

// TableName overrides
func (Form) TableName() string {
	return "forms"
}

func (FormField) TableName() string {
	return "form_fields"
}
