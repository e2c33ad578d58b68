package notes

import (
	"strconv"

	"inventory/pkg/metadata"
)

// Fields is the flat request form of the structured side-data. Only the fields that
// belong to the asset type's variant are kept.
type Fields struct {
	OperatingSystem string   `json:"operatingSystem,omitempty"`
	RemoteAccessID  string   `json:"teamviewerId,omitempty"`
	Rental          string   `json:"rental,omitempty"`
	DeliveryNote    string   `json:"deliveryNote,omitempty"`
	PhoneNumber     string   `json:"phoneNumber,omitempty"`
	PIN             string   `json:"pin,omitempty"`
	PUK             string   `json:"puk,omitempty"`
	IMEI            string   `json:"imei,omitempty"`
	Assignments     []string `json:"assignments,omitempty"`
}

// FromFields builds the payload for assetType. Types without a structured variant get
// the general notes as plain text.
func FromFields(assetType metadata.AssetType, fields Fields, general string) Payload {
	switch KindFor(assetType) {
	case KindComputerDetails:
		return ComputerDetails{
			OperatingSystem: fields.OperatingSystem,
			RemoteAccessID:  fields.RemoteAccessID,
			Rental:          fields.Rental,
			DeliveryNote:    fields.DeliveryNote,
			General:         general,
		}
	case KindMobileDetails:
		return MobileDetails{
			PhoneNumber: fields.PhoneNumber,
			PIN:         fields.PIN,
			PUK:         fields.PUK,
			IMEI:        fields.IMEI,
			General:     general,
		}
	case KindLicenseAssignments:
		return NewLicenseAssignments(fields.Assignments, general)
	default:
		return PlainText{Text: general}
	}
}

// NewLicenseAssignments numbers the usernames as assignment-1, assignment-2, ...
func NewLicenseAssignments(usernames []string, general string) LicenseAssignments {
	assignments := make([]LicenseAssignment, 0, len(usernames))
	for i, username := range usernames {
		assignments = append(assignments, LicenseAssignment{
			ID:       "assignment-" + strconv.Itoa(i+1),
			Username: username,
		})
	}
	return LicenseAssignments{Assignments: assignments, General: general}
}
