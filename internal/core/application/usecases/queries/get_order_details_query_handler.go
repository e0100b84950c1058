package queries

import (
	"context"
	"strings"
	"unicode"

	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// visiblePhoneDigits is how many trailing digits of a client phone stay readable.
const visiblePhoneDigits = 4

// GetOrderDetailsQueryHandler hydrates one order. It also produces the response of a
// successful claim.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

type orderDetailsRow struct {
	orderRow
	AddressFound     bool
	AddressLabel     string
	AddressStreet    string
	AddressApartment string
	AddressLat       *float64
	AddressLng       *float64
	FirmFound        bool
	FirmName         string
	FirmPhone        string
	ClientFound      bool
	ClientName       string
	ClientPhone      string
}

func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	db := h.db.WithContext(ctx)

	var rows []orderDetailsRow
	err := db.Raw(`SELECT`+orderColumns+`,
			a.id IS NOT NULL AS address_found,
			COALESCE(a.label, '') AS address_label,
			COALESCE(a.street, '') AS address_street,
			COALESCE(a.apartment, '') AS address_apartment,
			a.lat AS address_lat,
			a.lng AS address_lng,
			f.id IS NOT NULL AS firm_found,
			COALESCE(f.name, '') AS firm_name,
			COALESCE(f.phone, '') AS firm_phone,
			u.id IS NOT NULL AS client_found,
			COALESCE(u.full_name, '') AS client_name,
			COALESCE(u.phone, '') AS client_phone
		FROM orders o
		LEFT JOIN addresses a ON a.id = o.address_id
		LEFT JOIN firms f ON f.id = o.firm_id
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return OrderDetails{}, errs.NewStorageFailureError("get order details", err)
	}
	if len(rows) == 0 {
		return OrderDetails{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	row := rows[0]

	view, err := row.toView()
	if err != nil {
		return OrderDetails{}, err
	}
	views := []OrderView{view}
	if err = loadItems(db, views); err != nil {
		return OrderDetails{}, err
	}

	details := OrderDetails{OrderView: views[0]}
	if row.AddressFound {
		details.Address = &AddressView{
			Label:     row.AddressLabel,
			Street:    row.AddressStreet,
			Apartment: row.AddressApartment,
			Lat:       row.AddressLat,
			Lng:       row.AddressLng,
		}
	}
	if row.FirmFound {
		details.Firm = &FirmView{Name: row.FirmName, Phone: row.FirmPhone}
	}
	if row.ClientFound {
		details.Client = &ClientView{FullName: row.ClientName, MaskedPhone: MaskPhone(row.ClientPhone)}
	}
	return details, nil
}

// MaskPhone replaces every digit except the last four with '*'. Separators and a leading
// '+' are kept so the shape of the number stays recognisable.
func MaskPhone(phone string) string {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	var b strings.Builder
	b.Grow(len(phone))
	seen := 0
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		seen++
		if seen > digits-visiblePhoneDigits {
			b.WriteRune(r)
		} else {
			b.WriteRune('*')
		}
	}
	return b.String()
}
