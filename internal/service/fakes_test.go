package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/mailer"
	"github.com/spec-kit/event-staffing-service/internal/repository"
)

func assignmentKey(eventID, staffID string) string {
	return eventID + "/" + staffID
}

// fakeAssignmentRepo is an in-memory AssignmentRepository mirroring the
// version-guarded update of the real one.
type fakeAssignmentRepo struct {
	mu    sync.Mutex
	items map[string]domain.StaffAssignment
	// optional lookups backing ListPendingInvitedBefore
	eventsByID map[string]domain.Event
	staffByID  map[string]domain.StaffMember
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		items:      make(map[string]domain.StaffAssignment),
		eventsByID: make(map[string]domain.Event),
		staffByID:  make(map[string]domain.StaffMember),
	}
}

func (f *fakeAssignmentRepo) put(a domain.StaffAssignment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.Version == 0 {
		a.Version = 1
	}
	f.items[assignmentKey(a.EventID, a.StaffID)] = a
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *domain.StaffAssignment) error {
	a.Version = 1
	f.put(*a)
	return nil
}

func (f *fakeAssignmentRepo) Get(ctx context.Context, eventID, staffID string) (*domain.StaffAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.items[assignmentKey(eventID, staffID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (f *fakeAssignmentRepo) GetByToken(ctx context.Context, token string) (*domain.StaffAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, stored := range f.items {
		if stored.ConfirmationToken != nil && *stored.ConfirmationToken == token {
			out := stored
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAssignmentRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.StaffAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.StaffAssignment
	for _, stored := range f.items {
		if stored.EventID == eventID {
			out = append(out, stored)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, eventID, staffID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := assignmentKey(eventID, staffID)
	if _, ok := f.items[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, key)
	return nil
}

func (f *fakeAssignmentRepo) UpdateConfirmation(ctx context.Context, a *domain.StaffAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := assignmentKey(a.EventID, a.StaffID)
	stored, ok := f.items[key]
	if !ok || stored.Version != a.Version {
		return repository.ErrVersionConflict
	}
	stored.ConfirmationStatus = a.ConfirmationStatus
	stored.ConfirmationToken = a.ConfirmationToken
	stored.TokenExpiresAt = a.TokenExpiresAt
	stored.ConfirmedAt = a.ConfirmedAt
	stored.DeclinedAt = a.DeclinedAt
	stored.Version++
	f.items[key] = stored
	a.Version = stored.Version
	return nil
}

func (f *fakeAssignmentRepo) UpdateInvitationTimestamps(ctx context.Context, a *domain.StaffAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := assignmentKey(a.EventID, a.StaffID)
	stored, ok := f.items[key]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.LastInvitationSentAt = a.LastInvitationSentAt
	stored.ManualInvitationSentAt = a.ManualInvitationSentAt
	f.items[key] = stored
	return nil
}

func (f *fakeAssignmentRepo) ListPendingInvitedBefore(ctx context.Context, cutoff time.Time) ([]repository.PendingAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.PendingAssignment
	for _, stored := range f.items {
		if stored.ConfirmationStatus != domain.ConfirmationPending {
			continue
		}
		if stored.LastInvitationSentAt == nil || !stored.LastInvitationSentAt.Before(cutoff) {
			continue
		}
		candidate := repository.PendingAssignment{Assignment: stored}
		candidate.Event = f.eventsByID[stored.EventID]
		if member, ok := f.staffByID[stored.StaffID]; ok {
			candidate.StaffName = member.Name
			candidate.StaffEmail = member.Email
		}
		out = append(out, candidate)
	}
	return out, nil
}

type fakeStaffRepo struct {
	byID map[string]domain.StaffMember
}

func newFakeStaffRepo(members ...domain.StaffMember) *fakeStaffRepo {
	f := &fakeStaffRepo{byID: make(map[string]domain.StaffMember)}
	for _, m := range members {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *domain.StaffMember) error {
	f.byID[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *domain.StaffMember) error {
	if _, ok := f.byID[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	stored, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (f *fakeStaffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

type fakeEventRepo struct {
	byID map[string]domain.Event
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	f.byID[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *domain.Event) error {
	if _, ok := f.byID[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	stored, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

type fakeScheduleRepo struct {
	schedules []domain.Schedule
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *domain.Schedule) error {
	f.schedules = append(f.schedules, *schedule)
	return nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, schedule *domain.Schedule) error {
	for i, s := range f.schedules {
		if s.ID == schedule.ID {
			f.schedules[i] = *schedule
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	for i, s := range f.schedules {
		if s.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeScheduleRepo) ListByStaff(ctx context.Context, staffID string) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, s := range f.schedules {
		if s.StaffID == staffID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.Schedule, error) {
	out := make(map[string][]domain.Schedule)
	for _, s := range f.schedules {
		out[s.StaffID] = append(out[s.StaffID], s)
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves []domain.LeaveDate
}

func (f *fakeLeaveRepo) Create(ctx context.Context, leave *domain.LeaveDate) error {
	f.leaves = append(f.leaves, *leave)
	return nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	for i, l := range f.leaves {
		if l.ID == id {
			f.leaves = append(f.leaves[:i], f.leaves[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeLeaveRepo) ListByStaff(ctx context.Context, staffID string) ([]domain.LeaveDate, error) {
	var out []domain.LeaveDate
	for _, l := range f.leaves {
		if l.StaffID == staffID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.LeaveDate, error) {
	out := make(map[string][]domain.LeaveDate)
	for _, l := range f.leaves {
		out[l.StaffID] = append(out[l.StaffID], l)
	}
	return out, nil
}

func (f *fakeLeaveRepo) DeleteEndedBefore(ctx context.Context, today time.Time) (int64, error) {
	var kept []domain.LeaveDate
	var removed int64
	for _, l := range f.leaves {
		if l.Ended(today) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	f.leaves = kept
	return removed, nil
}

// fakeMailer records every message and can be told to fail.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []mailer.Message
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, msg)
	return "msg-" + msg.To, nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fixedClock returns a now func pinned to t, adjustable via offset.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
