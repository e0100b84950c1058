package order

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// Item is one line of an order. Name and price are copied from the catalog when the
// order is placed so later catalog edits do not rewrite order history.
type Item struct {
	productID kernel.UUID
	name      string
	quantity  int
	price     kernel.Money
}

// NewItem validates a line snapshot.
func NewItem(productID kernel.UUID, name string, quantity int, price kernel.Money) (Item, error) {
	item := Item{}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// ProductID returns the catalog product the line was created from.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price at order time.
func (i Item) Price() kernel.Money {
	return i.price
}

// Subtotal returns price * quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Mul(i.quantity)
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}
