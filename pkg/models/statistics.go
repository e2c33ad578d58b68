package models

import "inventory/pkg/metadata"

type Statistics struct {
	Total           int                        `json:"total"`
	ByStatus        map[metadata.Status]int    `json:"byStatus"`
	ByType          map[metadata.AssetType]int `json:"byType"`
	RecentlyUpdated []Asset                    `json:"recentlyUpdated"`
}
