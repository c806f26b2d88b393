package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"placementportal/internal/domain"
)

// DefaultBookingHorizon is how far ahead a slot may be scheduled when no policy is configured.
const DefaultBookingHorizon = 15 * 24 * time.Hour

const (
	opCreate  = "create"
	opAccept  = "accept"
	opCancel  = "cancel"
	opRelease = "release"
	opDelete  = "delete"
)

// BookingPolicy holds the configurable limits applied when a slot is created.
type BookingPolicy struct {
	// Horizon is the furthest a slot's start may be from the time of the request.
	Horizon time.Duration
}

type bookingService struct {
	repo    domain.SlotRepository
	policy  BookingPolicy
	logger  *slog.Logger
	metrics domain.BookingMetrics
	now     func() time.Time
}

// NewBookingService creates a BookingService backed by the given slot registry.
// metrics may be nil.
func NewBookingService(repo domain.SlotRepository, policy BookingPolicy, logger *slog.Logger, metrics domain.BookingMetrics) domain.BookingService {
	if policy.Horizon <= 0 {
		policy.Horizon = DefaultBookingHorizon
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{
		repo:    repo,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *bookingService) CreateSlot(ctx context.Context, ownerID string, in domain.CreateSlotInput) (slot *domain.Slot, err error) {
	defer func() { s.observe(opCreate, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if err := validateSlotInput(in); err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.checkSchedulingWindow(in.Interval, now); err != nil {
		return nil, err
	}

	slot = domain.NewSlot(ownerID, strings.TrimSpace(in.Topic), strings.TrimSpace(in.Details), strings.TrimSpace(in.MeetingReference), in.Interval, now)
	err = s.repo.RunLocked(ctx, []string{ownerID}, func(ctx context.Context, repo domain.SlotRepository) error {
		existing, err := repo.ListActiveByParticipant(ctx, ownerID, slot.StartTime, slot.EndTime)
		if err != nil {
			return storageErr("list participant slots", err)
		}
		if c := domain.FindConflict(slot.Interval(), existing, ""); c != nil {
			return &domain.ConflictError{SlotID: c.ID, Interval: c.Interval()}
		}
		if err := repo.Create(ctx, slot); err != nil {
			return storageErr("create slot", err)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("create slot", err)
	}

	s.logger.InfoContext(ctx, "interview slot created",
		"slot_id", slot.ID,
		"owner_id", ownerID,
		"start_time", slot.StartTime,
		"duration_minutes", slot.DurationMinutes,
	)
	return slot, nil
}

func (s *bookingService) AcceptSlot(ctx context.Context, participantID, slotID string) (slot *domain.Slot, err error) {
	defer func() { s.observe(opAccept, err) }()

	if strings.TrimSpace(participantID) == "" {
		return nil, fmt.Errorf("%w: participant is required", domain.ErrInvalidInput)
	}
	now := s.now()
	slot, err = s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, storageErr("get slot", err)
	}
	if err := checkTransition(opAccept, slot, participantID, now); err != nil {
		return nil, err
	}

	err = s.repo.RunLocked(ctx, []string{participantID}, func(ctx context.Context, repo domain.SlotRepository) error {
		existing, err := repo.ListActiveByParticipant(ctx, participantID, slot.StartTime, slot.EndTime)
		if err != nil {
			return storageErr("list participant slots", err)
		}
		if c := domain.FindConflict(slot.Interval(), existing, slot.ID); c != nil {
			return &domain.ConflictError{SlotID: c.ID, Interval: c.Interval()}
		}
		applied, err := repo.Assign(ctx, slot.ID, participantID, now)
		if err != nil {
			return storageErr("assign slot", err)
		}
		if !applied {
			return s.explainRejectedWrite(ctx, repo, opAccept, slot.ID, participantID, now)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("accept slot", err)
	}

	slot.AssigneeID = &participantID
	slot.UpdatedAt = now
	slot.RefreshStatus()
	s.logger.InfoContext(ctx, "interview slot accepted", "slot_id", slot.ID, "owner_id", slot.OwnerID, "assignee_id", participantID)
	return slot, nil
}

func (s *bookingService) CancelAsOwner(ctx context.Context, ownerID, slotID string) (slot *domain.Slot, err error) {
	defer func() { s.observe(opCancel, err) }()

	now := s.now()
	slot, err = s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, storageErr("get slot", err)
	}
	if err := checkTransition(opCancel, slot, ownerID, now); err != nil {
		return nil, err
	}
	applied, err := s.repo.MarkCancelled(ctx, slotID, ownerID, now)
	if err != nil {
		return nil, storageErr("cancel slot", err)
	}
	if !applied {
		return nil, s.explainRejectedWrite(ctx, s.repo, opCancel, slotID, ownerID, now)
	}

	slot.Cancelled = true
	slot.UpdatedAt = now
	slot.RefreshStatus()
	s.logger.InfoContext(ctx, "interview slot cancelled", "slot_id", slotID, "owner_id", ownerID, "had_assignee", slot.HasAssignee())
	return slot, nil
}

func (s *bookingService) ReleaseAsAssignee(ctx context.Context, participantID, slotID string) (slot *domain.Slot, err error) {
	defer func() { s.observe(opRelease, err) }()

	now := s.now()
	slot, err = s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, storageErr("get slot", err)
	}
	if err := checkTransition(opRelease, slot, participantID, now); err != nil {
		return nil, err
	}
	applied, err := s.repo.ClearAssignee(ctx, slotID, participantID, now)
	if err != nil {
		return nil, storageErr("release slot", err)
	}
	if !applied {
		return nil, s.explainRejectedWrite(ctx, s.repo, opRelease, slotID, participantID, now)
	}

	slot.AssigneeID = nil
	slot.UpdatedAt = now
	slot.RefreshStatus()
	s.logger.InfoContext(ctx, "interview slot released", "slot_id", slotID, "participant_id", participantID)
	return slot, nil
}

func (s *bookingService) DeleteSlot(ctx context.Context, ownerID, slotID string) (err error) {
	defer func() { s.observe(opDelete, err) }()

	now := s.now()
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return storageErr("get slot", err)
	}
	if err := checkTransition(opDelete, slot, ownerID, now); err != nil {
		return err
	}
	applied, err := s.repo.Delete(ctx, slotID, ownerID, now)
	if err != nil {
		return storageErr("delete slot", err)
	}
	if !applied {
		return s.explainRejectedWrite(ctx, s.repo, opDelete, slotID, ownerID, now)
	}
	s.logger.InfoContext(ctx, "interview slot deleted", "slot_id", slotID, "owner_id", ownerID)
	return nil
}

func (s *bookingService) GetSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, storageErr("get slot", err)
	}
	return slot, nil
}

func (s *bookingService) ListAvailable(ctx context.Context, viewerID string, p domain.PaginationParams) ([]*domain.Slot, int, error) {
	slots, total, err := s.repo.ListOpen(ctx, viewerID, s.now(), p)
	if err != nil {
		return nil, 0, storageErr("list open slots", err)
	}
	if slots == nil {
		slots = []*domain.Slot{}
	}
	return slots, total, nil
}

func (s *bookingService) ListMine(ctx context.Context, participantID string) ([]*domain.Slot, error) {
	slots, err := s.repo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, storageErr("list participant slots", err)
	}
	if slots == nil {
		slots = []*domain.Slot{}
	}
	return slots, nil
}

// checkSchedulingWindow enforces that the slot starts strictly after now and within the policy horizon.
func (s *bookingService) checkSchedulingWindow(iv domain.Interval, now time.Time) error {
	if !iv.Start.After(now) {
		return fmt.Errorf("%w: start time must be in the future", domain.ErrInvalidInterval)
	}
	if iv.Start.After(now.Add(s.policy.Horizon)) {
		return fmt.Errorf("%w: start time must be within %d days", domain.ErrInvalidInterval, int(s.policy.Horizon.Hours()/24))
	}
	return nil
}

// explainRejectedWrite re-reads a slot after a conditional write matched no
// row and returns the precondition that no longer holds.
func (s *bookingService) explainRejectedWrite(ctx context.Context, repo domain.SlotRepository, op, slotID, actorID string, now time.Time) error {
	fresh, err := repo.GetByID(ctx, slotID)
	if err != nil {
		return storageErr("get slot", err)
	}
	if err := checkTransition(op, fresh, actorID, now); err != nil {
		return err
	}
	if op == opAccept {
		// Taken and released again between the check and the write.
		return domain.ErrAlreadyAssigned
	}
	return fmt.Errorf("%s slot %s: %w", op, slotID, domain.ErrConcurrentUpdate)
}

func (s *bookingService) observe(op string, err error) {
	if s.metrics != nil {
		s.metrics.Observe(op, err)
	}
}

// checkTransition validates that actorID may apply op to slot at now.
func checkTransition(op string, slot *domain.Slot, actorID string, now time.Time) error {
	switch op {
	case opAccept:
		switch {
		case slot.Cancelled:
			return domain.ErrSlotCancelled
		case slot.Started(now):
			return domain.ErrTooLate
		case slot.OwnerID == actorID:
			return domain.ErrSelfAssignment
		case slot.HasAssignee():
			return domain.ErrAlreadyAssigned
		}
	case opCancel:
		switch {
		case slot.OwnerID != actorID:
			return domain.ErrForbidden
		case slot.Cancelled:
			return domain.ErrSlotCancelled
		case slot.Started(now):
			return domain.ErrTooLate
		}
	case opRelease:
		switch {
		case !slot.IsAssignee(actorID):
			return domain.ErrForbidden
		case slot.Cancelled:
			return domain.ErrSlotCancelled
		case slot.Started(now):
			return domain.ErrTooLate
		}
	case opDelete:
		// Only open slots can be deleted; an accepted slot has to be cancelled.
		switch {
		case slot.OwnerID != actorID:
			return domain.ErrForbidden
		case slot.Cancelled:
			return domain.ErrSlotCancelled
		case slot.Started(now):
			return domain.ErrTooLate
		case slot.HasAssignee():
			return domain.ErrAlreadyAssigned
		}
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}

func validateSlotInput(in domain.CreateSlotInput) error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("%w: topic is required", domain.ErrInvalidInput)
	}
	if err := ValidateMeetingReference(in.MeetingReference); err != nil {
		return err
	}
	return in.Interval.Validate()
}

// ValidateMeetingReference checks ref is an absolute http(s) URL.
func ValidateMeetingReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("%w: meeting_reference is required", domain.ErrInvalidInput)
	}
	u, err := url.ParseRequestURI(ref)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: meeting_reference must be an http(s) URL", domain.ErrInvalidInput)
	}
	return nil
}

// storageErr passes booking errors through and marks anything else as a storage failure.
func storageErr(op string, err error) error {
	if isBookingError(err) {
		return err
	}
	return domain.Unavailable(op, err)
}

func isBookingError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrForbidden,
		domain.ErrInvalidInput,
		domain.ErrInvalidInterval,
		domain.ErrSchedulingConflict,
		domain.ErrAlreadyAssigned,
		domain.ErrSelfAssignment,
		domain.ErrTooLate,
		domain.ErrSlotCancelled,
		domain.ErrConcurrentUpdate,
		domain.ErrUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
