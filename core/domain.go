package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidIdentifierType = errors.New("core: invalid identifier type")
	ErrInvalidIdentifier     = errors.New("core: invalid identifier")
	ErrAchievementNotFound   = errors.New("core: achievement not found")
	ErrAwardNotFound         = errors.New("core: award not found")
	ErrMissingCreator        = errors.New("core: achievement has no creator")
)

// Type tags carried on stored records, mirroring the Open Badges v3
// vocabulary the credentials are published under.
const (
	TypeIdentityObject        = "IdentityObject"
	TypeAchievementSubject    = "AchievementSubject"
	TypeAchievementCredential = "AchievementCredential"
)

// IdentifierType is the closed external vocabulary for recipient
// identifiers. The value set is fixed; new codes are never minted here.
type IdentifierType string

const (
	IdentifierName                   IdentifierType = "NAME"
	IdentifierSourceID               IdentifierType = "SOURCEID"
	IdentifierSystemID               IdentifierType = "SYSTEMID"
	IdentifierProductID              IdentifierType = "PRODUCTID"
	IdentifierUsername               IdentifierType = "USERNAME"
	IdentifierAccountID              IdentifierType = "ACCOUNTID"
	IdentifierEmailAddress           IdentifierType = "EMAILADDRESS"
	IdentifierNationalIdentityNumber IdentifierType = "NATIONALIDENTITYNUMBER"
	IdentifierISBN                   IdentifierType = "ISBN"
	IdentifierISSN                   IdentifierType = "ISSN"
	IdentifierLISSourcedID           IdentifierType = "LISSOURCEDID"
	IdentifierOneRosterSourcedID     IdentifierType = "ONEROSTERSOURCEDID"
	IdentifierSISSourcedID           IdentifierType = "SISSOURCEDID"
	IdentifierLTIContextID           IdentifierType = "LTICONTEXTID"
	IdentifierLTIDeploymentID        IdentifierType = "LTIDEPLOYMENTID"
	IdentifierLTIToolID              IdentifierType = "LTITOOLID"
	IdentifierLTIPlatformID          IdentifierType = "LTIPLATFORMID"
	IdentifierLTIUserID              IdentifierType = "LTIUSERID"
	IdentifierGeneric                IdentifierType = "IDENTIFIER"
)

func IdentifierTypes() []IdentifierType {
	return []IdentifierType{
		IdentifierName,
		IdentifierSourceID,
		IdentifierSystemID,
		IdentifierProductID,
		IdentifierUsername,
		IdentifierAccountID,
		IdentifierEmailAddress,
		IdentifierNationalIdentityNumber,
		IdentifierISBN,
		IdentifierISSN,
		IdentifierLISSourcedID,
		IdentifierOneRosterSourcedID,
		IdentifierSISSourcedID,
		IdentifierLTIContextID,
		IdentifierLTIDeploymentID,
		IdentifierLTIToolID,
		IdentifierLTIPlatformID,
		IdentifierLTIUserID,
		IdentifierGeneric,
	}
}

func ParseIdentifierType(value string) (IdentifierType, error) {
	normalized := IdentifierType(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range IdentifierTypes() {
		if normalized == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIdentifierType, value)
}

func (t IdentifierType) Valid() bool {
	_, err := ParseIdentifierType(string(t))
	return err == nil
}

// Achievement is the immutable definition a credential is issued
// against. It is read-only input to the award workflow.
type Achievement struct {
	DocID       string
	CreatorID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateAchievementInput struct {
	CreatorID   string
	Name        string
	Description string
}

func (in CreateAchievementInput) Validate() error {
	if strings.TrimSpace(in.CreatorID) == "" {
		return fmt.Errorf("%w: creator id is required", ErrMissingCreator)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("core: achievement name is required")
	}
	return nil
}

// IdentityObject is a deduplicated record of an external identifier.
// At most one row exists per identity hash; the uniqueness lives in a
// storage constraint, not in application logic.
type IdentityObject struct {
	ID           string
	Type         string
	IdentityHash string
	IdentityType IdentifierType
	Hashed       bool
	CreatedAt    time.Time
}

// IdentityRef is the stable reference the resolver hands back.
type IdentityRef struct {
	ID           string
	IdentityHash string
	Hashed       bool
}

// Profile is the denormalized snapshot embedded in a subject. Email is
// always overwritten with the resolved identifier, never trusted from
// caller input.
type Profile struct {
	Name       string
	GivenName  string
	FamilyName string
	Email      string
}

// AchievementSubject binds one identity to one achievement. Subjects
// are created fresh per award and never deduplicated; several subjects
// may share an identity across achievements.
type AchievementSubject struct {
	DocID         string
	IdentityID    string
	AchievementID string
	SourceID      string
	Type          []string
	Profile       Profile
	CreatedAt     time.Time
}

// AchievementCredential is the issued artifact. URI is the public
// identifier; it is finalized in a second write once the storage docId
// is known, and the placeholder value is never visible outside the
// issuing transaction.
type AchievementCredential struct {
	DocID       string
	URI         string
	Type        []string
	Name        string
	Description string
	AwardedDate time.Time
	ValidFrom   time.Time
	IssuerID    string
	SubjectID   string
	Subject     *AchievementSubject
	Identity    *IdentityObject
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IssueAwardRequest struct {
	CredentialID   string
	Identifier     string
	IdentifierType IdentifierType
	Profile        Profile
}

func (r IssueAwardRequest) Validate() error {
	if strings.TrimSpace(r.CredentialID) == "" {
		return fmt.Errorf("core: credential id is required")
	}
	if strings.TrimSpace(r.Identifier) == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidIdentifier)
	}
	if strings.TrimSpace(string(r.IdentifierType)) != "" && !r.IdentifierType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifierType, r.IdentifierType)
	}
	return nil
}

type ListAwardsRequest struct {
	AchievementID string
	Query         string
	Limit         int
}

func (r ListAwardsRequest) Validate() error {
	if strings.TrimSpace(r.AchievementID) == "" {
		return fmt.Errorf("core: achievement id is required")
	}
	if r.Limit < 0 {
		return fmt.Errorf("core: list limit must not be negative")
	}
	return nil
}

// SearchableProfileField names one profile column the list filter may
// match against. The set is closed; dynamic field lookup is not
// supported.
type SearchableProfileField string

const (
	SearchFieldName       SearchableProfileField = "name"
	SearchFieldFamilyName SearchableProfileField = "family_name"
	SearchFieldGivenName  SearchableProfileField = "given_name"
	SearchFieldEmail      SearchableProfileField = "email"
)

func SearchableProfileFields() []SearchableProfileField {
	return []SearchableProfileField{
		SearchFieldName,
		SearchFieldFamilyName,
		SearchFieldGivenName,
		SearchFieldEmail,
	}
}

// PublicProfile is the public-safe projection of a subject profile.
type PublicProfile struct {
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	Email      string `json:"email,omitempty"`
}

type PublicSubject struct {
	DocID   string        `json:"docId"`
	Type    []string      `json:"type"`
	Profile PublicProfile `json:"profile"`
}

// PublicCredential is the read projection returned to callers. Internal
// relation keys (identity id, subject foreign keys) are excluded.
type PublicCredential struct {
	DocID       string         `json:"docId"`
	ID          string         `json:"id"`
	Type        []string       `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	AwardedDate time.Time      `json:"awardedDate"`
	ValidFrom   time.Time      `json:"validFrom"`
	IssuerID    string         `json:"issuer"`
	Subject     *PublicSubject `json:"credentialSubject,omitempty"`
}

func (c AchievementCredential) ToPublic() PublicCredential {
	out := PublicCredential{
		DocID:       c.DocID,
		ID:          c.URI,
		Type:        append([]string(nil), c.Type...),
		Name:        c.Name,
		Description: c.Description,
		AwardedDate: c.AwardedDate,
		ValidFrom:   c.ValidFrom,
		IssuerID:    c.IssuerID,
	}
	if c.Subject != nil {
		out.Subject = &PublicSubject{
			DocID: c.Subject.DocID,
			Type:  append([]string(nil), c.Subject.Type...),
			Profile: PublicProfile{
				Name:       c.Subject.Profile.Name,
				GivenName:  c.Subject.Profile.GivenName,
				FamilyName: c.Subject.Profile.FamilyName,
				Email:      c.Subject.Profile.Email,
			},
		}
	}
	return out
}
