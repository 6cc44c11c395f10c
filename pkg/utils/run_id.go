package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable id for one job execution.
// Format: {job}-{8charHexUUID}, e.g. "payroll-a3f8e2b1"
func GenerateRunID(job string) string {
	return job + "-" + generateShortUUID()
}

// JobOfRunID returns the job part of a run id, or the id itself when it
// carries no suffix
func JobOfRunID(runID string) string {
	i := strings.LastIndex(runID, "-")
	if i < 0 || len(runID)-i-1 != 8 {
		return runID
	}
	return runID[:i]
}

func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
