package models

import (
	"time"
)

type Organization struct {
	OrganizationID int        `gorm:"primaryKey;column:organization_id" json:"organization_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Website        *string    `gorm:"column:website" json:"website,omitempty"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Publication struct {
	PublicationID  int        `gorm:"primaryKey;column:publication_id" json:"publication_id"`
	OrganizationID int        `gorm:"column:organization_id" json:"organization_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Description    *string    `gorm:"column:description" json:"description,omitempty"`
	Website        *string    `gorm:"column:website" json:"website,omitempty"`
	IsActive       bool       `gorm:"column:is_active" json:"is_active"`
	IsFeatured     bool       `gorm:"column:is_featured" json:"is_featured"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Forms        []Form        `gorm:"foreignKey:PublicationID" json:"forms,omitempty"`
}

// PublicationMember binds a user to a publication with an editorial role.
// The assignment counters are advisory: they feed the assignment-suggestion
// UI and are never enforced as a hard cap.
type PublicationMember struct {
	MemberID           int        `gorm:"primaryKey;column:member_id" json:"member_id"`
	PublicationID      int        `gorm:"column:publication_id" json:"publication_id"`
	UserID             int        `gorm:"column:user_id" json:"user_id"`
	Role               string     `gorm:"column:role" json:"role"` // reader|editor|admin
	CurrentAssignments int        `gorm:"column:current_assignments" json:"current_assignments"`
	MaxAssignments     int        `gorm:"column:max_assignments" json:"max_assignments"`
	CreateAt           *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt           *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt           *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Publication *Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
}

type Bookmark struct {
	BookmarkID    int        `gorm:"primaryKey;column:bookmark_id" json:"bookmark_id"`
	UserID        int        `gorm:"column:user_id;uniqueIndex:uniq_user_publication" json:"user_id"`
	PublicationID int        `gorm:"column:publication_id;uniqueIndex:uniq_user_publication" json:"publication_id"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Publication *Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
}

// TableName overrides
func (Organization) TableName() string {
	return "organizations"
}

func (Publication) TableName() string {
	return "publications"
}

func (PublicationMember) TableName() string {
	return "publication_members"
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
