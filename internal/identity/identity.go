// Package identity derives stable record IDs for seeded content, so a fresh
// database in any environment hands out the same IDs for the same copy.
package identity

import (
	"strings"
	"time"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID hashes key into a UUID. Keys carry a record-type prefix so sections,
// projects and events never share an ID.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return id
}

func SectionUUID(section string) uuid.UUID {
	return UUID("site:section:" + strings.ToLower(strings.TrimSpace(section)))
}

func ProjectUUID(name string) uuid.UUID {
	return UUID("site:project:" + strings.TrimSpace(name))
}

// EventUUID keys an event by its English title and calendar day.
func EventUUID(title string, date time.Time) uuid.UUID {
	return UUID("site:event:" + strings.TrimSpace(title) + ":" + date.UTC().Format(time.DateOnly))
}
