package metadata

import "fmt"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
