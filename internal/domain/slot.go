package domain

import (
	"context"
	"time"
)

// SlotStatus is derived from the assignee and cancelled fields; it is not stored.
type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "open"
	SlotStatusAccepted  SlotStatus = "accepted"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// Slot is a bookable mock interview hosted by its owner.
// swagger:model Slot
type Slot struct {
	ID               string     `json:"id"`
	Topic            string     `json:"topic"`
	Details          string     `json:"details"`
	MeetingReference string     `json:"meeting_reference"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	DurationMinutes  int        `json:"duration_minutes"`
	OwnerID          string     `json:"owner_id"`
	AssigneeID       *string    `json:"assignee_id"`
	Cancelled        bool       `json:"cancelled"`
	Status           SlotStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewSlot returns an open Slot owned by ownerID. ID is set by the repository on create.
func NewSlot(ownerID, topic, details, meetingReference string, interval Interval, createdAt time.Time) *Slot {
	s := &Slot{
		Topic:            topic,
		Details:          details,
		MeetingReference: meetingReference,
		StartTime:        interval.Start,
		EndTime:          interval.End(),
		DurationMinutes:  interval.DurationMinutes,
		OwnerID:          ownerID,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	s.RefreshStatus()
	return s
}

// Interval returns the slot's time range.
func (s *Slot) Interval() Interval {
	return NewInterval(s.StartTime, s.DurationMinutes)
}

// HasAssignee reports whether someone has accepted the slot.
func (s *Slot) HasAssignee() bool {
	return s.AssigneeID != nil && *s.AssigneeID != ""
}

// IsAssignee reports whether participantID is the current assignee.
func (s *Slot) IsAssignee(participantID string) bool {
	return s.HasAssignee() && *s.AssigneeID == participantID
}

// Started reports whether the slot is read-only because its start has passed.
func (s *Slot) Started(now time.Time) bool {
	return !now.Before(s.StartTime)
}

// RefreshStatus recomputes Status from Cancelled and AssigneeID.
func (s *Slot) RefreshStatus() {
	switch {
	case s.Cancelled:
		s.Status = SlotStatusCancelled
	case s.HasAssignee():
		s.Status = SlotStatusAccepted
	default:
		s.Status = SlotStatusOpen
	}
}

// CreateSlotInput carries the caller-supplied fields for a new slot.
type CreateSlotInput struct {
	Topic            string
	Details          string
	MeetingReference string
	Interval         Interval
}

// SlotRepository is the slot registry. The conditional writes (Assign,
// ClearAssignee, MarkCancelled, Delete) apply their precondition and the
// change as one statement and report whether a row was changed.
type SlotRepository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	// ListActiveByParticipant returns non-cancelled slots owned by or assigned to
	// participantID that end after from and start before to.
	ListActiveByParticipant(ctx context.Context, participantID string, from, to time.Time) ([]*Slot, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*Slot, error)
	// ListOpen returns open slots not owned by viewerID starting after the given instant, plus the total count.
	ListOpen(ctx context.Context, viewerID string, after time.Time, p PaginationParams) ([]*Slot, int, error)
	Assign(ctx context.Context, slotID, participantID string, now time.Time) (bool, error)
	ClearAssignee(ctx context.Context, slotID, participantID string, now time.Time) (bool, error)
	MarkCancelled(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error)
	Delete(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error)
	// RunLocked runs fn while holding an exclusive lock for each participant.
	// fn must use the repository it is given so its reads and writes share the lock scope.
	RunLocked(ctx context.Context, participantIDs []string, fn func(ctx context.Context, repo SlotRepository) error) error
}

// BookingService defines the mock-interview booking operations.
type BookingService interface {
	CreateSlot(ctx context.Context, ownerID string, in CreateSlotInput) (*Slot, error)
	AcceptSlot(ctx context.Context, participantID, slotID string) (*Slot, error)
	CancelAsOwner(ctx context.Context, ownerID, slotID string) (*Slot, error)
	ReleaseAsAssignee(ctx context.Context, participantID, slotID string) (*Slot, error)
	DeleteSlot(ctx context.Context, ownerID, slotID string) error
	GetSlot(ctx context.Context, slotID string) (*Slot, error)
	ListAvailable(ctx context.Context, viewerID string, p PaginationParams) ([]*Slot, int, error)
	ListMine(ctx context.Context, participantID string) ([]*Slot, error)
}

// BookingMetrics records the outcome of booking operations.
type BookingMetrics interface {
	Observe(operation string, err error)
}
