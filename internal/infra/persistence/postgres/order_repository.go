package postgres

import (
	"context"

	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/domain/repository"
	"diner/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its lines. GORM's association
// handling inserts into orders and order_lines in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderCreationFailed.WrapMessage("invalid user or menu item reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrOrderCreationFailed.WrapMessage("missing required order information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the order entity with generated IDs and timestamps
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range order.Lines {
		if i < len(orderM.Lines) {
			order.Lines[i].ID = orderM.Lines[i].ID
		}
	}

	return nil
}

// FindByID retrieves a single order with its lines. Orders are fetched right
// after placement for the confirmation view, so read from the primary to
// avoid a stale replica missing the new row.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Lines").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser returns a user's orders, most recent first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	lines := make([]entity.OrderLine, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, entity.OrderLine{
			ID:                  line.ID,
			MenuItemID:          line.MenuItemID,
			Name:                line.Name,
			UnitPrice:           line.UnitPrice,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	return &entity.Order{
		ID:        data.ID,
		UserID:    data.UserID,
		Lines:     lines,
		Subtotal:  data.Subtotal,
		Total:     data.Total,
		Status:    entity.OrderStatus(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	lines := make([]model.OrderLineModel, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, model.OrderLineModel{
			MenuItemID:          line.MenuItemID,
			Name:                line.Name,
			UnitPrice:           line.UnitPrice,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	return &model.OrderModel{
		ID:       data.ID,
		UserID:   data.UserID,
		Subtotal: data.Subtotal,
		Total:    data.Total,
		Status:   string(data.Status),
		Lines:    lines,
	}
}
