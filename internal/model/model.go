// internal/model/model.go
package model

import (
	"github.com/google/uuid"
)

// assignID gives a row a UUID before insert when the caller has not set one.
// IDs are generated in Go so the same models work on postgres and sqlite.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Organization{},
		&User{},
		&Application{},
		&PlatformUser{},
		&Persona{},
		&Campaign{},
		&Content{},
		&AccessAuditLog{},
		&Industry{},
		&AgeRange{},
	}
}
