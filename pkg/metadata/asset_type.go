package metadata

import (
	"fmt"
	"strings"
)

type AssetType string

const (
	TypeComputer  AssetType = "computer"
	TypeLaptop    AssetType = "laptop"
	TypeMonitor   AssetType = "monitor"
	TypeMouse     AssetType = "mouse"
	TypeKeyboard  AssetType = "keyboard"
	TypeTelephone AssetType = "telephone"
	TypeMobile    AssetType = "mobile"
	TypeScanner   AssetType = "scanner"
	TypePrinter   AssetType = "printer"
	TypeCable     AssetType = "cable"
	TypeLicense   AssetType = "license"
	TypeOther     AssetType = "other"
)

// AssetTypes lists every asset type in display order.
var AssetTypes = []AssetType{
	TypeComputer,
	TypeLaptop,
	TypeMonitor,
	TypeMouse,
	TypeKeyboard,
	TypeTelephone,
	TypeMobile,
	TypeScanner,
	TypePrinter,
	TypeCable,
	TypeLicense,
	TypeOther,
}

func NewAssetType(value string) (AssetType, error) {
	assetType := AssetType(strings.ToLower(strings.TrimSpace(value)))
	if !assetType.IsValid() {
		return "", fmt.Errorf("invalid asset type: %s", value)
	}
	return assetType, nil
}

func (t AssetType) IsValid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasComputerDetails reports whether notes of this type may carry computer side-data.
func (t AssetType) HasComputerDetails() bool {
	return t == TypeComputer || t == TypeLaptop
}

func (t AssetType) String() string {
	return string(t)
}
