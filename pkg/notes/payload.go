// Package notes encodes type-specific side-data into the free-text notes column of an
// asset and decodes it back. Plain text is stored verbatim; structured variants are
// stored as JSON objects. Anything that does not decode as the variant expected for the
// asset type is read back as plain text.
package notes

import (
	"encoding/json"
	"fmt"
	"strings"

	"inventory/pkg/metadata"
)

type Kind string

const (
	KindPlainText          Kind = "plain_text"
	KindComputerDetails    Kind = "computer_details"
	KindMobileDetails      Kind = "mobile_details"
	KindLicenseAssignments Kind = "license_assignments"
)

type Payload interface {
	Kind() Kind
	GeneralNotes() string
}

type PlainText struct {
	Text string
}

type ComputerDetails struct {
	OperatingSystem string `json:"operatingSystem"`
	RemoteAccessID  string `json:"teamviewerId"`
	Rental          string `json:"rental"`
	DeliveryNote    string `json:"deliveryNote"`
	General         string `json:"generalNotes"`
}

type MobileDetails struct {
	PhoneNumber string `json:"phoneNumber"`
	PIN         string `json:"pin"`
	PUK         string `json:"puk"`
	IMEI        string `json:"imei"`
	General     string `json:"generalNotes"`
}

type LicenseAssignment struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LicenseAssignments struct {
	Assignments []LicenseAssignment `json:"assignments"`
	General     string              `json:"generalNotes"`
}

func (p PlainText) Kind() Kind          { return KindPlainText }
func (p ComputerDetails) Kind() Kind    { return KindComputerDetails }
func (p MobileDetails) Kind() Kind      { return KindMobileDetails }
func (p LicenseAssignments) Kind() Kind { return KindLicenseAssignments }

func (p PlainText) GeneralNotes() string          { return p.Text }
func (p ComputerDetails) GeneralNotes() string    { return p.General }
func (p MobileDetails) GeneralNotes() string      { return p.General }
func (p LicenseAssignments) GeneralNotes() string { return p.General }

// Usernames returns the assigned usernames in order.
func (p LicenseAssignments) Usernames() []string {
	usernames := make([]string, 0, len(p.Assignments))
	for _, assignment := range p.Assignments {
		usernames = append(usernames, assignment.Username)
	}
	return usernames
}

var recognisedKeys = map[Kind][]string{
	KindComputerDetails:    {"operatingSystem", "teamviewerId", "rental", "deliveryNote", "generalNotes"},
	KindMobileDetails:      {"phoneNumber", "pin", "puk", "imei", "generalNotes"},
	KindLicenseAssignments: {"assignments", "generalNotes"},
}

// KindFor returns the structured variant an asset type may carry, or KindPlainText.
func KindFor(assetType metadata.AssetType) Kind {
	switch {
	case assetType.HasComputerDetails():
		return KindComputerDetails
	case assetType == metadata.TypeMobile:
		return KindMobileDetails
	case assetType == metadata.TypeLicense:
		return KindLicenseAssignments
	default:
		return KindPlainText
	}
}

func Encode(p Payload) (string, error) {
	if p == nil {
		return "", nil
	}
	if plain, ok := p.(PlainText); ok {
		return plain.Text, nil
	}
	if licenses, ok := p.(LicenseAssignments); ok && licenses.Assignments == nil {
		licenses.Assignments = []LicenseAssignment{}
		p = licenses
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s notes: %w", p.Kind(), err)
	}
	return string(data), nil
}

func Decode(assetType metadata.AssetType, raw string) Payload {
	kind := KindFor(assetType)
	if kind == KindPlainText || !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return PlainText{Text: raw}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return PlainText{Text: raw}
	}
	if !hasAnyKey(fields, recognisedKeys[kind]) {
		return PlainText{Text: raw}
	}

	var (
		payload Payload
		err     error
	)
	switch kind {
	case KindComputerDetails:
		var details ComputerDetails
		err = json.Unmarshal([]byte(raw), &details)
		payload = details
	case KindMobileDetails:
		var details MobileDetails
		err = json.Unmarshal([]byte(raw), &details)
		payload = details
	case KindLicenseAssignments:
		var licenses LicenseAssignments
		err = json.Unmarshal([]byte(raw), &licenses)
		if licenses.Assignments == nil {
			licenses.Assignments = []LicenseAssignment{}
		}
		payload = licenses
	}
	if err != nil {
		return PlainText{Text: raw}
	}
	return payload
}

// GeneralNotes extracts the free-text part of stored notes whatever their shape.
func GeneralNotes(assetType metadata.AssetType, raw string) string {
	return Decode(assetType, raw).GeneralNotes()
}

func hasAnyKey(fields map[string]json.RawMessage, keys []string) bool {
	for _, key := range keys {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}
