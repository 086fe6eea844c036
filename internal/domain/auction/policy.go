package auction

import (
	"fmt"

	"troffee-admin-console/internal/domain/shared"
)

// Field names an editable auction field, using the form/wire names
type Field string

const (
	FieldTitle         Field = "title"
	FieldCategory      Field = "category"
	FieldDescription   Field = "description"
	FieldStartingPrice Field = "startingPrice"
	FieldCurrency      Field = "currency"
	FieldImages        Field = "images"
	FieldVideo         Field = "video"
	FieldStartTime     Field = "startTime"
	FieldEndTime       Field = "endTime"
)

// AllFields lists every editable field in form order
var AllFields = []Field{
	FieldTitle,
	FieldCategory,
	FieldDescription,
	FieldStartTime,
	FieldEndTime,
	FieldStartingPrice,
	FieldCurrency,
	FieldImages,
	FieldVideo,
}

// EditMode is the form variant the editor shows for a status
type EditMode string

const (
	EditModeFull        EditMode = "full"
	EditModeEndTimeOnly EditMode = "end_time_only"
	EditModeReadOnly    EditMode = "read_only"
)

var permittedFields = map[Status]map[Field]bool{
	StatusUpcoming: {
		FieldTitle:         true,
		FieldCategory:      true,
		FieldDescription:   true,
		FieldStartingPrice: true,
		FieldCurrency:      true,
		FieldImages:        true,
		FieldVideo:         true,
		FieldStartTime:     true,
		FieldEndTime:       true,
	},
	StatusActive: {
		FieldEndTime: true,
	},
	StatusEnded: {},
}

// CanEdit reports whether field may be changed while the auction is in status
func CanEdit(status Status, field Field) bool {
	return permittedFields[status][field]
}

// AuthorizeEdit checks every requested field against the fields the status permits.
// It returns nil when the edit is allowed, otherwise an error wrapping
// shared.ErrFieldNotEditable that names the first rejected field.
//
// The check is advisory, the auction API stays the authority.
func AuthorizeEdit(status Status, fields []Field) error {
	for _, field := range fields {
		if !CanEdit(status, field) {
			return fmt.Errorf("%w: %s cannot be changed while auction is %s", shared.ErrFieldNotEditable, field, statusLabel(status))
		}
	}
	return nil
}

// CanDelete reports whether an auction in status may be deleted
func CanDelete(status Status) bool {
	return status == StatusUpcoming || status == StatusActive
}

// ModeFor returns the editor mode for status
func ModeFor(status Status) EditMode {
	switch status {
	case StatusUpcoming:
		return EditModeFull
	case StatusActive:
		return EditModeEndTimeOnly
	default:
		return EditModeReadOnly
	}
}

func statusLabel(status Status) string {
	if status == "" {
		return "unknown"
	}
	return string(status)
}
