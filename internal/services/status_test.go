package services

import (
	"promptvault-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  models.PromptStatus
		isStaff  bool
		isPublic bool
		want     models.PromptStatus
	}{
		{"Private always approved", models.PromptStatusPending, false, false, models.PromptStatusApproved},
		{"Private approved even when rejected", models.PromptStatusRejected, false, false, models.PromptStatusApproved},
		{"Private approved for staff too", models.PromptStatusPending, true, false, models.PromptStatusApproved},
		{"Staff keeps approved", models.PromptStatusApproved, true, true, models.PromptStatusApproved},
		{"Staff keeps rejected", models.PromptStatusRejected, true, true, models.PromptStatusRejected},
		{"Staff keeps pending", models.PromptStatusPending, true, true, models.PromptStatusPending},
		{"User edit of approved goes pending", models.PromptStatusApproved, false, true, models.PromptStatusPending},
		{"User edit of rejected goes pending", models.PromptStatusRejected, false, true, models.PromptStatusPending},
		{"User edit of pending stays pending", models.PromptStatusPending, false, true, models.PromptStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.current, tt.isStaff, tt.isPublic))
		})
	}
}
