// Package memdb is an in-memory stand-in for the PostgreSQL repositories and
// the transaction manager, used by use case, service and handler tests.
//
// Transactions are serialized by a single mutex and rolled back by restoring
// a snapshot, so concurrent callers observe the same isolation a serializable
// PostgreSQL transaction would give them.
package memdb

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

type txMarker struct{}

// Store holds resources and reservations
type Store struct {
	mu           sync.Mutex
	resources    map[int64]domain.Resource
	reservations []domain.Reservation
	nextID       int64

	// ReadErr, if set, is returned by every read
	ReadErr error
}

func New() *Store {
	return &Store{
		resources: make(map[int64]domain.Resource),
		nextID:    1,
	}
}

// AddResource stores r as is
func (s *Store) AddResource(r domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID] = r
}

// Reservations returns a copy of every stored reservation
func (s *Store) Reservations() []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Reservation(nil), s.reservations...)
}

// CountOn returns the number of reservations of resourceID on date
func (s *Store) CountOn(resourceID int64, date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.reservations {
		if r.ResourceID == resourceID && r.Date.String() == date {
			n++
		}
	}
	return n
}

// Resources returns the resources repository view of the store
func (s *Store) Resources() *ResourceRepo { return &ResourceRepo{s: s} }

// ReservationsRepo returns the reservations repository view of the store
func (s *Store) ReservationsRepo() *ReservationRepo { return &ReservationRepo{s: s} }

type snapshot struct {
	resources    map[int64]domain.Resource
	reservations []domain.Reservation
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	resources := make(map[int64]domain.Resource, len(s.resources))
	for k, v := range s.resources {
		resources[k] = v
	}
	return snapshot{
		resources:    resources,
		reservations: append([]domain.Reservation(nil), s.reservations...),
		nextID:       s.nextID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = snap.resources
	s.reservations = snap.reservations
	s.nextID = snap.nextID
}

// ResourceRepo implements the resources repository contract
type ResourceRepo struct {
	s *Store
}

func (r *ResourceRepo) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	res, ok := r.s.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return &res, nil
}

func (r *ResourceRepo) Upsert(_ context.Context, res *domain.Resource) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	saved := *res
	if existing, ok := r.s.resources[res.ID]; ok {
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	r.s.resources[res.ID] = saved
	return &saved, nil
}

// ReservationRepo implements the reservations repository contract
type ReservationRepo struct {
	s *Store
}

func (r *ReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reservations {
		if existing.ResourceID == reservation.ResourceID &&
			existing.OccupantID == reservation.OccupantID &&
			existing.Date.Equal(reservation.Date) {
			return nil, fmt.Errorf("%w: memdb", reservationRepo.ErrDuplicateReservation)
		}
	}

	created := *reservation
	created.ID = r.s.nextID
	created.CreatedAt = time.Now()
	r.s.nextID++
	r.s.reservations = append(r.s.reservations, created)
	return &created, nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	for _, existing := range r.s.reservations {
		if existing.ID == id {
			found := existing
			return &found, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (r *ReservationRepo) GetByResourceAndPeriod(_ context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}

	window := domain.DateWindow{Start: filter.From, End: filter.To}
	result := make([]domain.Reservation, 0)
	for _, existing := range r.s.reservations {
		if existing.ResourceID != filter.ResourceID || !window.Contains(existing.Date) {
			continue
		}
		if filter.OccupantID != nil && existing.OccupantID != *filter.OccupantID {
			continue
		}
		result = append(result, existing)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *ReservationRepo) GetByOccupant(_ context.Context, filter domain.OccupantFilter) ([]domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}

	result := make([]domain.Reservation, 0)
	for _, existing := range r.s.reservations {
		if existing.OccupantID != filter.OccupantID {
			continue
		}
		if filter.After != nil && !existing.Date.After(*filter.After) {
			continue
		}
		result = append(result, existing)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *ReservationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, existing := range r.s.reservations {
		if existing.ID == id {
			r.s.reservations = append(r.s.reservations[:i], r.s.reservations[i+1:]...)
			return nil
		}
	}
	return reservationRepo.ErrReservationNotFound
}

// TxManager serializes transactions over a Store
type TxManager struct {
	s  *Store
	mu sync.Mutex

	// FailCommits makes the next N commits fail with a serialization error
	FailCommits int
	// MaxRetries bounds the retries of a failed commit
	MaxRetries int
	// Attempts counts every transaction attempt
	Attempts int
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s, MaxRetries: txmanager.DefaultMaxRetries}
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= m.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.Attempts++

		snap := m.s.snapshot()
		if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
			m.s.restore(snap)
			return err
		}

		if m.FailCommits > 0 {
			m.FailCommits--
			m.s.restore(snap)
			lastErr = fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: "40001", Message: "could not serialize access"})
			continue
		}
		return nil
	}

	return fmt.Errorf("%w: %w", txmanager.ErrRetriesExhausted, lastErr)
}

