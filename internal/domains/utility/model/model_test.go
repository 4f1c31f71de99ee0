package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kosan/internal/domains/utility/model"
)

func TestUsageLineJoinQuery(t *testing.T) {
	join := model.UsageLine{}.GetJoinQuery()

	assert.Contains(t, join, "JOIN services ON services.id = utility_usages.service_id")

	// A soft-deleted service must not price billing lines.
	assert.Contains(t, join, "services.deleted_at IS NULL")
}
