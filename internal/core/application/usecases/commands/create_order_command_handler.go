package commands

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders in the PENDING stage of their firm's queue.
//
// Item names and prices are snapshotted from the catalog at this point. The total is the
// amount agreed with the client and is stored as given.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.Catalog
	addresses  ports.AddressStore
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.Catalog,
	addresses ports.AddressStore,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		addresses:  addresses,
	}
}

// Handle validates references against the address store and the catalog, then stores
// the order.
//
// Returns an errs.ErrObjectNotFound error for an unknown address or product and an
// errs.ErrValueIsInvalid error for a product of another firm.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ok, err := h.addresses.Exists(ctx, cmd.AddressID(), cmd.UserID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("addressId", cmd.AddressID().String())
	}

	items, err := h.snapshotItems(ctx, cmd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateNumber(now),
		order.Placement{
			UserID:    cmd.UserID(),
			FirmID:    cmd.FirmID(),
			BranchID:  cmd.BranchID(),
			AddressID: cmd.AddressID(),
		},
		items,
		cmd.Total(),
		cmd.PaymentMethod(),
		cmd.Notes(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) snapshotItems(ctx context.Context, cmd CreateOrderCommand) ([]order.Item, error) {
	lines := cmd.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	snapshots, err := h.catalog.Snapshot(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]ports.ProductSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	items := make([]order.Item, 0, len(lines))
	var lineErrs []error
	for _, line := range lines {
		product, found := byID[line.ProductID]
		if !found {
			lineErrs = append(lineErrs, errs.NewObjectNotFoundError("productId", line.ProductID.String()))
			continue
		}
		if !product.FirmID.IsEqual(cmd.FirmID()) {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause("productId",
				errors.New(line.ProductID.String()+" is sold by another firm")))
			continue
		}

		item, itemErr := order.NewItem(product.ID, product.Name, line.Quantity, product.Price)
		if itemErr != nil {
			lineErrs = append(lineErrs, itemErr)
			continue
		}
		items = append(items, item)
	}
	if err = errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	return items, nil
}
