package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carvia/internal/domains/booking/model"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	// The existing booking holds [base, base+2h).
	tests := []struct {
		name    string
		bPickup time.Time
		bDrop   time.Time
		want    bool
	}{
		{
			name:    "back-to-back after, pickup at the existing dropoff",
			bPickup: at(2),
			bDrop:   at(4),
			want:    false,
		},
		{
			name:    "back-to-back before, dropoff at the existing pickup",
			bPickup: at(-2),
			bDrop:   at(0),
			want:    false,
		},
		{
			name:    "identical interval",
			bPickup: at(0),
			bDrop:   at(2),
			want:    true,
		},
		{
			name:    "partial overlap at the tail",
			bPickup: at(1),
			bDrop:   at(3),
			want:    true,
		},
		{
			name:    "partial overlap at the head",
			bPickup: at(-1),
			bDrop:   at(1),
			want:    true,
		},
		{
			name:    "contained inside the existing interval",
			bPickup: base.Add(30 * time.Minute),
			bDrop:   base.Add(90 * time.Minute),
			want:    true,
		},
		{
			name:    "containing the existing interval",
			bPickup: at(-1),
			bDrop:   at(3),
			want:    true,
		},
		{
			name:    "disjoint after",
			bPickup: at(3),
			bDrop:   at(5),
			want:    false,
		},
		{
			name:    "disjoint before",
			bPickup: at(-5),
			bDrop:   at(-3),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(at(0), at(2), tt.bPickup, tt.bDrop))

			// The predicate is symmetric in the two intervals.
			assert.Equal(t, tt.want, model.Overlaps(tt.bPickup, tt.bDrop, at(0), at(2)))
		})
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
		want bool
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, true},
		{"pending to completed", model.StatusPending, model.StatusCompleted, false},
		{"confirmed to completed", model.StatusConfirmed, model.StatusCompleted, true},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, true},
		{"confirmed to pending", model.StatusConfirmed, model.StatusPending, false},
		{"cancelled is terminal", model.StatusCancelled, model.StatusPending, false},
		{"completed is terminal", model.StatusCompleted, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusOccupying(t *testing.T) {
	assert.True(t, model.StatusPending.Occupying())
	assert.True(t, model.StatusConfirmed.Occupying())
	assert.False(t, model.StatusCancelled.Occupying())
	assert.False(t, model.StatusCompleted.Occupying())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, model.StatusPending.Valid())
	assert.False(t, model.Status("returned").Valid())
}
