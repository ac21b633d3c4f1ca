// internal/basket/implementation.go
package basket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"basketservice/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// service implements the Service interface.
type service struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.BasketMetrics
	tracer  trace.Tracer
}

// NewService creates a basket service backed by store. metrics may be nil.
func NewService(store Store, logger *slog.Logger, metrics *observability.BasketMetrics) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("basketservice/basket"),
	}
}

// CreateBasket builds a new empty basket and registers it with the store.
func (s *service) CreateBasket(ctx context.Context, _ CreateBasketCommand) (result Result, err error) {
	b := New()
	ctx, span := s.start(ctx, "create_basket", b.ID())
	defer func() { s.finish(ctx, span, "create_basket", result, err) }()

	s.logger.InfoContext(ctx, "creating basket", "basket_id", b.ID())

	if _, err := s.store.Create(ctx, b); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "domain violation when creating basket",
				"basket_id", b.ID(), "error", err)
			return violationResult(Message(err)), nil
		}
		return Result{}, fmt.Errorf("create basket %s: %w", b.ID(), err)
	}

	s.logger.InfoContext(ctx, "created basket", "basket_id", b.ID())
	return okResult(b), nil
}

// GetBasket returns the stored basket.
func (s *service) GetBasket(ctx context.Context, id BasketID) (result Result, err error) {
	ctx, span := s.start(ctx, "get_basket", id)
	defer func() { s.finish(ctx, span, "get_basket", result, err) }()

	b, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("load basket %s: %w", id, err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "basket not found", "basket_id", id)
		return notFoundResult(msgBasketNotFound), nil
	}
	return okResult(b), nil
}

// AddItem adds one line, merging into an existing line for the same product.
func (s *service) AddItem(ctx context.Context, id BasketID, cmd AddItemCommand) (result Result, err error) {
	ctx, span := s.start(ctx, "add_item", id,
		attribute.String("product.id", cmd.ProductID),
		attribute.Int("item.quantity", cmd.Quantity),
	)
	defer func() { s.finish(ctx, span, "add_item", result, err) }()

	s.logger.InfoContext(ctx, "adding item",
		"basket_id", id, "product_id", cmd.ProductID, "quantity", cmd.Quantity)

	b, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("load basket %s: %w", id, err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "basket not found", "basket_id", id)
		return notFoundResult(msgBasketNotFound), nil
	}

	if _, err := b.AddItem(cmd.ProductID, cmd.Quantity); err != nil {
		var rule *RuleError
		if !errors.As(err, &rule) {
			return Result{}, err
		}
		s.logger.WarnContext(ctx, "domain violation when adding item",
			"basket_id", id, "product_id", cmd.ProductID, "error", rule)
		return violationResult(rule.Error()), nil
	}

	if err := s.store.Save(ctx, b); err != nil {
		return Result{}, fmt.Errorf("save basket %s: %w", id, err)
	}
	s.metrics.RecordItemsAdded(ctx, cmd.Quantity)

	s.logger.InfoContext(ctx, "added item", "basket_id", id, "item_count", b.Len())
	return okResult(b), nil
}

// AddItems applies every line in order. The first violation aborts the batch
// and nothing is saved, so the stored basket is exactly as it was.
func (s *service) AddItems(ctx context.Context, id BasketID, cmd AddItemsCommand) (result Result, err error) {
	if len(cmd.Items) == 0 {
		return Result{}, fmt.Errorf("%w: batch must contain at least one item", ErrInvalidCommand)
	}

	ctx, span := s.start(ctx, "add_items", id, attribute.Int("batch.size", len(cmd.Items)))
	defer func() { s.finish(ctx, span, "add_items", result, err) }()

	s.logger.InfoContext(ctx, "batch adding items", "basket_id", id, "count", len(cmd.Items))

	b, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("load basket %s: %w", id, err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "basket not found", "basket_id", id)
		return notFoundResult(msgBasketNotFound), nil
	}

	units := 0
	for i, line := range cmd.Items {
		if _, err := b.AddItem(line.ProductID, line.Quantity); err != nil {
			var rule *RuleError
			if !errors.As(err, &rule) {
				return Result{}, err
			}
			s.logger.WarnContext(ctx, "domain violation during batch add",
				"basket_id", id, "index", i, "product_id", line.ProductID, "error", rule)
			return violationResult(rule.Error()), nil
		}
		units = addUnits(units, line.Quantity)
	}

	if err := s.store.Save(ctx, b); err != nil {
		return Result{}, fmt.Errorf("save basket %s: %w", id, err)
	}
	s.metrics.RecordItemsAdded(ctx, units)

	s.logger.InfoContext(ctx, "batch add complete", "basket_id", id, "item_count", b.Len())
	return okResult(b), nil
}

// RemoveItem deletes one line. A missing line is reported as NotFound.
func (s *service) RemoveItem(ctx context.Context, id BasketID, itemID ItemID) (result Result, err error) {
	ctx, span := s.start(ctx, "remove_item", id, attribute.String("item.id", itemID.String()))
	defer func() { s.finish(ctx, span, "remove_item", result, err) }()

	s.logger.InfoContext(ctx, "removing item", "basket_id", id, "item_id", itemID)

	b, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("load basket %s: %w", id, err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "basket not found", "basket_id", id)
		return notFoundResult(msgBasketNotFound), nil
	}

	if err := b.RemoveItem(itemID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			s.logger.InfoContext(ctx, "item not found in basket", "basket_id", id, "item_id", itemID)
			return notFoundResult(msgItemNotFound), nil
		}
		var rule *RuleError
		if !errors.As(err, &rule) {
			return Result{}, err
		}
		s.logger.WarnContext(ctx, "domain violation when removing item",
			"basket_id", id, "item_id", itemID, "error", rule)
		return violationResult(rule.Error()), nil
	}

	if err := s.store.Save(ctx, b); err != nil {
		return Result{}, fmt.Errorf("save basket %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "removed item", "basket_id", id, "item_count", b.Len())
	return okResult(b), nil
}

// addUnits sums units for the metrics counter, saturating at math.MaxInt.
func addUnits(total, quantity int) int {
	if quantity > math.MaxInt-total {
		return math.MaxInt
	}
	return total + quantity
}

func (s *service) start(ctx context.Context, operation string, id BasketID, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("basket.id", id.String()))
	return s.tracer.Start(ctx, "basket."+operation, trace.WithAttributes(attrs...))
}

func (s *service) finish(ctx context.Context, span trace.Span, operation string, result Result, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "basket operation failed", "operation", operation, "error", err)
		s.metrics.RecordOperation(ctx, operation, "error")
		return
	}

	span.SetAttributes(attribute.String("basket.outcome", result.Outcome.String()))
	s.metrics.RecordOperation(ctx, operation, result.Outcome.String())
}
