package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	errors "github.com/nicdiaze/Finances/internal"
	"github.com/nicdiaze/Finances/internal/core/events"
)

// Repository defines the data access contract for transactions. Query
// pushes the filter criteria down to the store; InRange feeds the
// aggregation engine with a date-bounded, date-descending set.
type Repository interface {
	Create(t *Transaction) error
	GetByID(id string) (*Transaction, error)
	Update(t *Transaction) error
	Delete(id string) error
	Query(criteria Criteria, limit, offset int) ([]*Transaction, int64, error)
	InRange(period DateRange) ([]*Transaction, error)
}

// EventPublisher decouples the service from the concrete bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateTransaction validates the payload and persists a new record. The
// date defaults to now when omitted.
func (s *Service) CreateTransaction(ctx context.Context, dto CreateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction validation failed", "error", err.GetDetailedMessage())
		return nil, err
	}

	t := NewTransaction(dto)
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create transaction", "error", err)
		return nil, errors.NewInternalError("failed to create transaction", err)
	}

	s.logger.Info("transaction created",
		"transaction_id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount)

	s.publish(ctx, events.NewTransactionCreatedEvent(t.ID, string(t.Type), string(t.Category), t.Amount.String()))

	return t, nil
}

// GetTransaction returns a single record. A malformed identifier is
// rejected before the store is queried, distinctly from not-found.
func (s *Service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to get transaction", err)
	}
	return t, nil
}

// UpdateTransaction applies a partial field set. The merged record is
// re-validated so a type change without a compatible category is rejected
// even though the UI resets category on type change.
func (s *Service) UpdateTransaction(ctx context.Context, id string, dto UpdateTransactionDTO) (*Transaction, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if dto.Empty() {
		return nil, errors.NewValidationError("no fields to update", errors.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction update validation failed", "error", err.GetDetailedMessage(), "transaction_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to load transaction for update", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to load transaction", err)
	}

	merged := dto.ApplyTo(current)
	if !ValidCategory(merged.Type, merged.Category) {
		return nil, errors.NewValidationFieldError("category",
			fmt.Sprintf("category %q is not valid for type %q", merged.Category, merged.Type),
			errors.ErrCodeInvalidCategory)
	}
	merged.UpdatedAt = time.Now()

	if err := s.repo.Update(merged); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to update transaction", err)
	}

	s.logger.Info("transaction updated",
		"transaction_id", id,
		"changed_fields", dto.ChangedFields())

	s.publish(ctx, events.NewTransactionUpdatedEvent(id, dto.ChangedFields()))

	return merged, nil
}

// DeleteTransaction removes a record permanently. There is no soft delete.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return errors.NewInternalError("failed to delete transaction", err)
	}

	s.logger.Info("transaction deleted", "transaction_id", id)

	s.publish(ctx, events.NewTransactionDeletedEvent(id))

	return nil
}

// ListTransactions runs a filtered query and returns the requested page,
// sorted by date descending. The page size is clamped to MaxPageSize.
func (s *Service) ListTransactions(ctx context.Context, criteria Criteria, page, pageSize int) (Page, error) {
	if err := criteria.Validate(); err != nil {
		s.logger.Warn("rejected list criteria", "error", err.GetDetailedMessage())
		return Page{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.repo.Query(criteria, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to query transactions", "error", err)
		return Page{}, errors.NewInternalError("failed to query transactions", err)
	}

	return PageFor(items, int(total), page, pageSize), nil
}

// Stats computes the period report. Year defaults to the current year;
// month is optional and scopes the report to a single calendar month.
func (s *Service) Stats(ctx context.Context, year, month int) (Report, DateRange, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	criteria := Criteria{Year: year, Month: month}
	if err := criteria.Validate(); err != nil {
		s.logger.Warn("rejected stats period", "error", err.GetDetailedMessage())
		return Report{}, DateRange{}, err
	}

	period, _ := criteria.Range()
	inRange, err := s.repo.InRange(period)
	if err != nil {
		s.logger.Error("failed to load transactions for stats", "error", err)
		return Report{}, DateRange{}, errors.NewInternalError("failed to compute statistics", err)
	}

	return Summarize(inRange, period), period, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, event)
}

func validateID(id string) *errors.AppError {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrInvalidTransactionID
	}
	return nil
}
