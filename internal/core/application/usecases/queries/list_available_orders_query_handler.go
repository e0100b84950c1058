package queries

import (
	"context"
	"strings"

	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListAvailableOrdersQueryHandler returns orders matching a status token, oldest first.
// An unknown token is taken as a literal stage, so it yields an empty list, not an error.
type ListAvailableOrdersQueryHandler struct {
	db         *gorm.DB
	vocabulary services.StatusVocabulary
}

func NewListAvailableOrdersQueryHandler(db *gorm.DB, vocabulary services.StatusVocabulary) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{db: db, vocabulary: vocabulary}
}

func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := h.vocabulary.Resolve(query.StatusToken())

	where := []string{"o.stage = ANY(?)"}
	args := []any{pq.Array(stageStrings(filter.Stages))}
	if filter.UnassignedOnly {
		where = append(where, "o.driver_id IS NULL")
	}
	if firmID := query.FirmID(); firmID != nil {
		where = append(where, "o.firm_id = ?")
		args = append(args, firmID.Bytes())
	}

	db := h.db.WithContext(ctx)

	var rows []orderRow
	err := db.Raw(`SELECT`+orderColumns+`
		FROM orders o
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY o.created_at, o.seq`, args...).Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStorageFailureError("list available orders", err)
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.toView()
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	if err = loadItems(db, views); err != nil {
		return nil, err
	}
	return views, nil
}

// loadItems fills Items of every view with one query.
func loadItems(db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	byID := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		ids = append(ids, v.ID.Bytes())
		byID[v.ID.Bytes()] = i
	}

	var rows []itemRow
	err := db.Raw(`
		SELECT order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&rows).Error
	if err != nil {
		return errs.NewStorageFailureError("load order items", err)
	}

	for _, row := range rows {
		item, itemErr := row.toView()
		if itemErr != nil {
			return itemErr
		}
		i := byID[row.OrderID]
		views[i].Items = append(views[i].Items, item)
	}
	return nil
}
