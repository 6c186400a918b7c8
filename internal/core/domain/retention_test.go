package domain_test

import (
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDaysRemaining(t *testing.T) {
	now := time.UnixMilli(1_756_339_200_000) // Fixed reference instant

	tests := []struct {
		name      string
		deletedAt int64
		want      int
	}{
		{
			name:      "just deleted",
			deletedAt: now.UnixMilli(),
			want:      5,
		},
		{
			name:      "four days ago keeps one day",
			deletedAt: now.UnixMilli() - 4*domain.MillisPerDay,
			want:      1,
		},
		{
			name:      "exactly at the TTL",
			deletedAt: now.UnixMilli() - 5*domain.MillisPerDay,
			want:      0,
		},
		{
			name:      "one millisecond past the TTL",
			deletedAt: now.UnixMilli() - 5*domain.MillisPerDay - 1,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DaysRemaining(tt.deletedAt, now))
		})
	}
}

func TestRetentionExpired(t *testing.T) {
	now := time.UnixMilli(1_756_339_200_000)

	// One millisecond past the TTL must be purged on next observation.
	assert.True(t, domain.RetentionExpired(now.UnixMilli()-5*domain.MillisPerDay-1, now))
	// Four days old is still visible.
	assert.False(t, domain.RetentionExpired(now.UnixMilli()-4*domain.MillisPerDay, now))
}
