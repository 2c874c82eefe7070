package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/metrics"
	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/store"
	"github.com/UnknownOlympus/hrnet/internal/tableview"
	"github.com/UnknownOlympus/hrnet/internal/validator"
)

// SuccessMessage is shown after an employee has been added.
const SuccessMessage = "Employee added successfully !"

const defaultSaveTimeout = 5 * time.Second

// ErrNotSaved reports an accepted employee whose store could not be written.
var ErrNotSaved = errors.New("employee store was not saved")

// Persister saves and restores the employee store.
type Persister interface {
	Save(ctx context.Context, s store.Store) error
	Rehydrate(ctx context.Context) store.Store
}

// Staff owns the current employee store and runs submissions against it.
type Staff struct {
	log         *slog.Logger
	persister   Persister
	metrics     *metrics.Metrics
	engine      *tableview.Engine
	now         func() time.Time
	saveTimeout time.Duration
	strictSave  bool

	mu      sync.RWMutex
	current store.Store
}

// Option configures a Staff service.
type Option func(*Staff)

// WithClock replaces the clock used for age checks.
func WithClock(now func() time.Time) Option {
	return func(s *Staff) { s.now = now }
}

// WithSaveTimeout bounds each write of the store.
func WithSaveTimeout(timeout time.Duration) Option {
	return func(s *Staff) {
		if timeout > 0 {
			s.saveTimeout = timeout
		}
	}
}

// WithStrictSave makes Submit return save failures.
func WithStrictSave() Option {
	return func(s *Staff) { s.strictSave = true }
}

// WithLocale sets the collation locale used to sort the table.
func WithLocale(locale string) Option {
	return func(s *Staff) { s.engine = tableview.NewEngine(locale) }
}

func NewStaff(log *slog.Logger, persister Persister, metrics *metrics.Metrics, opts ...Option) *Staff {
	staff := &Staff{
		log:         log,
		persister:   persister,
		metrics:     metrics,
		engine:      tableview.NewEngine("en"),
		now:         time.Now,
		saveTimeout: defaultSaveTimeout,
	}

	for _, opt := range opts {
		opt(staff)
	}

	return staff
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// Rehydrate replaces the current store with the persisted one. It is called once at start-up.
func (s *Staff) Rehydrate(ctx context.Context) {
	const opn = "Employee.Rehydrate"
	log := s.initLogger(opn)

	restored := s.persister.Rehydrate(ctx)

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()

	s.setStored(restored.Len())
	log.InfoContext(ctx, "Employee store ready", "records", restored.Len())
}

// Submit validates a candidate, appends it to the store and saves the store.
//
// The returned error is either a *validator.Error carrying the single message to show,
// or nil. A failed save is logged and does not fail the submission: the employee stays
// in the in-memory store and the next successful save persists it. With WithStrictSave
// a failed save is returned as ErrNotSaved alongside the accepted employee.
func (s *Staff) Submit(ctx context.Context, candidate models.Employee) (models.Employee, error) {
	const opn = "Employee.Submit"
	log := s.initLogger(opn)

	s.mu.Lock()
	defer s.mu.Unlock()

	employee, err := validator.Validate(candidate, s.current.Records(), s.now())
	if err != nil {
		s.reject(err)
		log.InfoContext(ctx, "Employee rejected", sl.Err(err))
		return models.Employee{}, err
	}

	s.current = store.Append(s.current, employee)
	s.setStored(s.current.Len())
	if s.metrics != nil {
		s.metrics.Submissions.WithLabelValues("success").Inc()
	}

	log.InfoContext(ctx, "Employee added",
		"firstName", employee.FirstName, "lastName", employee.LastName, "records", s.current.Len())

	// The save outlives a client that goes away after submitting.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
	defer cancel()

	if saveErr := s.persister.Save(saveCtx, s.current); saveErr != nil {
		log.ErrorContext(ctx, "Failed to persist employee store", sl.Err(saveErr))
		if s.strictSave {
			return employee, fmt.Errorf("%w: %w", ErrNotSaved, saveErr)
		}
	}

	return employee, nil
}

// Snapshot returns the current store.
func (s *Staff) Snapshot() store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// List projects the current store for the table view.
func (s *Staff) List(q tableview.Query) tableview.Page {
	return s.engine.Project(s.Snapshot().Records(), q)
}

func (s *Staff) reject(err error) {
	if s.metrics == nil {
		return
	}

	s.metrics.Submissions.WithLabelValues("rejected").Inc()

	kind := "Unknown"
	var verr *validator.Error
	if errors.As(err, &verr) {
		kind = string(verr.Kind)
	}
	s.metrics.ValidationFailures.WithLabelValues(kind).Inc()
}

func (s *Staff) setStored(n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoredEmployees.Set(float64(n))
}
