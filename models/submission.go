package models

import (
	"time"
)

type Submission struct {
	SubmissionID     int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	FormID           int        `gorm:"column:form_id" json:"form_id"`
	UserID           int        `gorm:"column:user_id" json:"user_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Subtitle         *string    `gorm:"column:subtitle" json:"subtitle,omitempty"`
	Genre            *string    `gorm:"column:genre" json:"genre,omitempty"`
	WordCount        *int       `gorm:"column:word_count" json:"word_count,omitempty"`
	Language         string     `gorm:"column:language" json:"language"`
	IsTranslation    bool       `gorm:"column:is_translation" json:"is_translation"`
	OriginalLanguage *string    `gorm:"column:original_language" json:"original_language,omitempty"`
	TranslatorName   *string    `gorm:"column:translator_name" json:"translator_name,omitempty"`
	CoverLetter      *string    `gorm:"column:cover_letter" json:"cover_letter,omitempty"`
	AuthorBio        *string    `gorm:"column:author_bio" json:"author_bio,omitempty"`
	Status           string     `gorm:"column:status" json:"status"`
	WithdrawalReason *string    `gorm:"column:withdrawal_reason" json:"withdrawal_reason,omitempty"`
	SubmittedAt      time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	WithdrawnAt      *time.Time `gorm:"column:withdrawn_at" json:"withdrawn_at,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User     *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Form     *Form            `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Files    []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
	Decision *Decision        `gorm:"foreignKey:SubmissionID" json:"decision,omitempty"`
}

// SubmissionFile records metadata for a blob held in object storage.
// (submission_id, file_hash) is unique so identical content is stored once
// per submission.
type SubmissionFile struct {
	FileID        int       `gorm:"primaryKey;column:file_id" json:"file_id"`
	SubmissionID  int       `gorm:"column:submission_id;uniqueIndex:uniq_submission_hash" json:"submission_id"`
	FileName      string    `gorm:"column:file_name" json:"file_name"`
	OriginalName  string    `gorm:"column:original_name" json:"original_name"`
	StoredPath    string    `gorm:"column:stored_path" json:"-"`
	FileSizeBytes int64     `gorm:"column:file_size_bytes" json:"file_size_bytes"`
	MimeType      string    `gorm:"column:mime_type" json:"mime_type"`
	FileHash      string    `gorm:"column:file_hash;uniqueIndex:uniq_submission_hash" json:"file_hash"`
	FileType      string    `gorm:"column:file_type" json:"file_type"` // manuscript|cover_letter|bio
	UploadedAt    time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// Review is a reader assignment plus the recorded recommendation once the
// reader completes it.
type Review struct {
	ReviewID       int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID   int        `gorm:"column:submission_id" json:"submission_id"`
	UserID         int        `gorm:"column:user_id" json:"user_id"`
	PublicationID  int        `gorm:"column:publication_id" json:"publication_id"`
	Rating         *int       `gorm:"column:rating" json:"rating,omitempty"`
	Recommendation *string    `gorm:"column:recommendation" json:"recommendation,omitempty"` // pass|maybe|yes
	Comments       *string    `gorm:"column:comments" json:"comments,omitempty"`
	IsComplete     bool       `gorm:"column:is_complete" json:"is_complete"`
	AssignedAt     time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	// Relations
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
}

// Decision is the terminal editorial verdict. At most one per submission.
type Decision struct {
	DecisionID   int        `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmissionID int        `gorm:"column:submission_id;unique" json:"submission_id"`
	DecidedBy    int        `gorm:"column:decided_by" json:"decided_by"`
	DecisionType string     `gorm:"column:decision_type" json:"decision_type"` // accept|decline|revise_resubmit|shortlist
	DecisionText *string    `gorm:"column:decision_text" json:"decision_text,omitempty"`
	SentAt       *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}

func (Review) TableName() string {
	return "reviews"
}

func (Decision) TableName() string {
	return "decisions"
}
