package utils

import "github.com/google/uuid"

// IDGenerator mints user ids. Ids are UUIDv7 so they sort by creation time.
type IDGenerator struct{}

func NewIDGenerator() IDGenerator {
	return IDGenerator{}
}

func (IDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
