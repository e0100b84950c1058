package driver

import (
	"errors"
	"strings"

	"waterdelivery/internal/pkg/errs"
)

// maxPlateLength bounds a licence plate as stored.
const maxPlateLength = 16

// Vehicle describes what the driver delivers with. Both fields are optional, but a
// plate is stored upper-cased without inner spaces.
type Vehicle struct {
	model string
	plate string
}

// NewVehicle normalizes and validates vehicle metadata.
func NewVehicle(model, plate string) (Vehicle, error) {
	model = strings.TrimSpace(model)
	plate = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))

	if len(plate) > maxPlateLength {
		return Vehicle{}, errs.NewValueIsOutOfRangeError("plate length", len(plate), 0, maxPlateLength)
	}
	if model == "" && plate != "" {
		return Vehicle{}, errs.NewValueIsRequiredErrorWithCause("vehicle model",
			errors.New("a plate without a model is ambiguous"))
	}

	return Vehicle{model: model, plate: plate}, nil
}

// Model returns the vehicle model, e.g. "Damas".
func (v Vehicle) Model() string {
	return v.model
}

// Plate returns the normalized licence plate.
func (v Vehicle) Plate() string {
	return v.plate
}

// IsEmpty reports whether no vehicle data was given.
func (v Vehicle) IsEmpty() bool {
	return v.model == "" && v.plate == ""
}
