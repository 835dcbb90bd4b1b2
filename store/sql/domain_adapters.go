package sqlstore

import (
	"time"

	"github.com/goliatone/go-awards/core"
)

func newAchievementRecord(in core.CreateAchievementInput, docID string, now time.Time) *achievementRecord {
	return &achievementRecord{
		DocID:       docID,
		CreatorID:   in.CreatorID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *achievementRecord) toDomain() core.Achievement {
	if r == nil {
		return core.Achievement{}
	}
	return core.Achievement{
		DocID:       r.DocID,
		CreatorID:   r.CreatorID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newIdentityRecord(in core.UpsertIdentityInput, id string, now time.Time) *identityRecord {
	recordType := in.Type
	if recordType == "" {
		recordType = core.TypeIdentityObject
	}
	identityType := string(in.IdentityType)
	if identityType == "" {
		identityType = string(core.IdentifierEmailAddress)
	}
	return &identityRecord{
		ID:           id,
		Type:         recordType,
		IdentityHash: in.IdentityHash,
		IdentityType: identityType,
		Hashed:       in.Hashed,
		CreatedAt:    now,
	}
}

func (r *identityRecord) toDomain() core.IdentityObject {
	if r == nil {
		return core.IdentityObject{}
	}
	return core.IdentityObject{
		ID:           r.ID,
		Type:         r.Type,
		IdentityHash: r.IdentityHash,
		IdentityType: core.IdentifierType(r.IdentityType),
		Hashed:       r.Hashed,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *identityRecord) toRef() core.IdentityRef {
	if r == nil {
		return core.IdentityRef{}
	}
	return core.IdentityRef{
		ID:           r.ID,
		IdentityHash: r.IdentityHash,
		Hashed:       r.Hashed,
	}
}

func (r *subjectRecord) toDomain() core.AchievementSubject {
	if r == nil {
		return core.AchievementSubject{}
	}
	subject := core.AchievementSubject{
		DocID:         r.DocID,
		IdentityID:    r.IdentityID,
		AchievementID: r.AchievementID,
		SourceID:      r.SourceID,
		Type:          append([]string(nil), r.Type...),
		CreatedAt:     r.CreatedAt,
	}
	if r.Profile != nil {
		subject.Profile = core.Profile{
			Name:       r.Profile.Name,
			GivenName:  r.Profile.GivenName,
			FamilyName: r.Profile.FamilyName,
			Email:      r.Profile.Email,
		}
	}
	return subject
}

func (r *credentialRecord) toDomain() core.AchievementCredential {
	if r == nil {
		return core.AchievementCredential{}
	}
	credential := core.AchievementCredential{
		DocID:       r.DocID,
		URI:         r.URI,
		Type:        append([]string(nil), r.Type...),
		Name:        r.Name,
		Description: r.Description,
		AwardedDate: r.AwardedDate,
		ValidFrom:   r.ValidFrom,
		IssuerID:    r.IssuerID,
		SubjectID:   r.SubjectID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Subject != nil {
		subject := r.Subject.toDomain()
		credential.Subject = &subject
		if r.Subject.Identity != nil {
			identityObject := r.Subject.Identity.toDomain()
			credential.Identity = &identityObject
		}
	}
	return credential
}
