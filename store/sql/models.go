package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type achievementRecord struct {
	bun.BaseModel `bun:"table:achievements,alias:ach"`

	DocID       string    `bun:"doc_id,pk"`
	CreatorID   string    `bun:"creator_id,notnull"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type identityRecord struct {
	bun.BaseModel `bun:"table:identity_objects,alias:io"`

	ID           string    `bun:"id,pk"`
	Type         string    `bun:"type,notnull"`
	IdentityHash string    `bun:"identity_hash,notnull,unique"`
	IdentityType string    `bun:"identity_type,notnull"`
	Hashed       bool      `bun:"hashed,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type subjectProfileRecord struct {
	bun.BaseModel `bun:"table:subject_profiles,alias:sp"`

	ID         string    `bun:"id,pk"`
	SubjectID  string    `bun:"subject_id,notnull,unique"`
	Name       string    `bun:"name"`
	GivenName  string    `bun:"given_name"`
	FamilyName string    `bun:"family_name"`
	Email      string    `bun:"email,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type subjectRecord struct {
	bun.BaseModel `bun:"table:achievement_subjects,alias:asub"`

	DocID         string    `bun:"doc_id,pk"`
	IdentityID    string    `bun:"identity_id,notnull"`
	AchievementID string    `bun:"achievement_id,notnull"`
	SourceID      string    `bun:"source_id,notnull"`
	Type          []string  `bun:"type,type:jsonb,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	Profile  *subjectProfileRecord `bun:"rel:has-one,join:doc_id=subject_id"`
	Identity *identityRecord       `bun:"rel:belongs-to,join:identity_id=id"`
}

type credentialRecord struct {
	bun.BaseModel `bun:"table:achievement_credentials,alias:ac"`

	DocID string `bun:"doc_id,pk"`
	// URI holds the public credential identifier. Within the issuing
	// transaction it briefly carries the subject doc id as a
	// placeholder until the credential's own doc id is known.
	URI         string    `bun:"uri,notnull"`
	Type        []string  `bun:"type,type:jsonb,notnull"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	AwardedDate time.Time `bun:"awarded_date,notnull"`
	ValidFrom   time.Time `bun:"valid_from,notnull"`
	IssuerID    string    `bun:"issuer_id,notnull"`
	SubjectID   string    `bun:"subject_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Subject *subjectRecord `bun:"rel:belongs-to,join:subject_id=doc_id"`
}
