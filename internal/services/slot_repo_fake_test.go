package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"placementportal/internal/domain"
)

// fakeSlotRepo is an in-memory SlotRepository. Every method copies slots in
// and out so callers never share memory with the store, and each conditional
// write checks and mutates under one mutex, like a single UPDATE statement.
type fakeSlotRepo struct {
	mu     sync.Mutex
	slots  map[string]*domain.Slot
	nextID int
	err    error // returned by every read and write when set

	lockMu           sync.Mutex
	participantLocks map[string]*sync.Mutex

	beforeAssign func() // called before Assign takes the store mutex
	runLocked    [][]string
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:            make(map[string]*domain.Slot),
		nextID:           1,
		participantLocks: make(map[string]*sync.Mutex),
	}
}

func cloneSlot(s *domain.Slot) *domain.Slot {
	c := *s
	if s.AssigneeID != nil {
		a := *s.AssigneeID
		c.AssigneeID = &a
	}
	c.RefreshStatus()
	return &c
}

// put stores a slot directly, bypassing validation, and returns its ID.
func (f *fakeSlotRepo) put(s *domain.Slot) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = fmt.Sprintf("slot-%d", f.nextID)
		f.nextID++
	}
	f.slots[s.ID] = cloneSlot(s)
	return s.ID
}

func (f *fakeSlotRepo) get(id string) *domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[id]; ok {
		return cloneSlot(s)
	}
	return nil
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *domain.Slot) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	slot.ID = fmt.Sprintf("slot-%d", f.nextID)
	f.nextID++
	f.slots[slot.ID] = cloneSlot(slot)
	return nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s := f.get(id); s != nil {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSlotRepo) ListActiveByParticipant(ctx context.Context, participantID string, from, to time.Time) ([]*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Slot
	for _, s := range f.slots {
		if s.Cancelled {
			continue
		}
		if s.OwnerID != participantID && !s.IsAssignee(participantID) {
			continue
		}
		if s.EndTime.After(from) && s.StartTime.Before(to) {
			out = append(out, cloneSlot(s))
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Slot
	for _, s := range f.slots {
		if s.OwnerID == participantID || s.IsAssignee(participantID) {
			out = append(out, cloneSlot(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeSlotRepo) ListOpen(ctx context.Context, viewerID string, after time.Time, p domain.PaginationParams) ([]*domain.Slot, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var open []*domain.Slot
	for _, s := range f.slots {
		if s.Cancelled || s.HasAssignee() || s.OwnerID == viewerID || !s.StartTime.After(after) {
			continue
		}
		open = append(open, cloneSlot(s))
	}
	sort.Slice(open, func(i, j int) bool { return open[i].StartTime.Before(open[j].StartTime) })
	total := len(open)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := total
	if p.Limit() > 0 && start+p.Limit() < end {
		end = start + p.Limit()
	}
	return open[start:end], total, nil
}

func (f *fakeSlotRepo) Assign(ctx context.Context, slotID, participantID string, now time.Time) (bool, error) {
	if f.beforeAssign != nil {
		f.beforeAssign()
	}
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.HasAssignee() || s.Cancelled || s.OwnerID == participantID || !now.Before(s.StartTime) {
		return false, nil
	}
	s.AssigneeID = &participantID
	s.UpdatedAt = now
	s.RefreshStatus()
	return true, nil
}

func (f *fakeSlotRepo) ClearAssignee(ctx context.Context, slotID, participantID string, now time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || !s.IsAssignee(participantID) || s.Cancelled || !now.Before(s.StartTime) {
		return false, nil
	}
	s.AssigneeID = nil
	s.UpdatedAt = now
	s.RefreshStatus()
	return true, nil
}

func (f *fakeSlotRepo) MarkCancelled(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.OwnerID != ownerID || s.Cancelled || !now.Before(s.StartTime) {
		return false, nil
	}
	s.Cancelled = true
	s.UpdatedAt = now
	s.RefreshStatus()
	return true, nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.OwnerID != ownerID || s.Cancelled || s.HasAssignee() || !now.Before(s.StartTime) {
		return false, nil
	}
	delete(f.slots, slotID)
	return true, nil
}

func (f *fakeSlotRepo) RunLocked(ctx context.Context, participantIDs []string, fn func(ctx context.Context, repo domain.SlotRepository) error) error {
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)

	f.lockMu.Lock()
	f.runLocked = append(f.runLocked, ids)
	locks := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		m, ok := f.participantLocks[id]
		if !ok {
			m = &sync.Mutex{}
			f.participantLocks[id] = m
		}
		locks = append(locks, m)
	}
	f.lockMu.Unlock()

	for _, m := range locks {
		m.Lock()
	}
	defer func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}()
	return fn(ctx, f)
}

// recordingMetrics captures Observe calls.
type recordingMetrics struct {
	mu       sync.Mutex
	observed []string
}

func (m *recordingMetrics) Observe(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	outcome := "ok"
	if err != nil {
		outcome = "err"
	}
	m.observed = append(m.observed, operation+":"+outcome)
}
