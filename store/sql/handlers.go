package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func achievementHandlers() repository.ModelHandlers[*achievementRecord] {
	return repository.ModelHandlers[*achievementRecord]{
		NewRecord: func() *achievementRecord {
			return &achievementRecord{}
		},
		GetID: func(record *achievementRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.DocID)
		},
		SetID: func(record *achievementRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.DocID = id.String()
		},
		GetIdentifier: func() string {
			return "doc_id"
		},
		GetIdentifierValue: func(record *achievementRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.DocID)
		},
	}
}

func identityHandlers() repository.ModelHandlers[*identityRecord] {
	return repository.ModelHandlers[*identityRecord]{
		NewRecord: func() *identityRecord {
			return &identityRecord{}
		},
		GetID: func(record *identityRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *identityRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *identityRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func subjectHandlers() repository.ModelHandlers[*subjectRecord] {
	return repository.ModelHandlers[*subjectRecord]{
		NewRecord: func() *subjectRecord {
			return &subjectRecord{}
		},
		GetID: func(record *subjectRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.DocID)
		},
		SetID: func(record *subjectRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.DocID = id.String()
		},
		GetIdentifier: func() string {
			return "doc_id"
		},
		GetIdentifierValue: func(record *subjectRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.DocID)
		},
	}
}

func credentialHandlers() repository.ModelHandlers[*credentialRecord] {
	return repository.ModelHandlers[*credentialRecord]{
		NewRecord: func() *credentialRecord {
			return &credentialRecord{}
		},
		GetID: func(record *credentialRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.DocID)
		},
		SetID: func(record *credentialRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.DocID = id.String()
		},
		GetIdentifier: func() string {
			return "doc_id"
		},
		GetIdentifierValue: func(record *credentialRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.DocID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
