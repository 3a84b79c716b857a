package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a unique ID for analysis runs
func GenerateID() string {
	return uuid.NewString()
}
