package models

// Assignee is a person or place that currently holds assets.
type Assignee struct {
	Name       string `json:"name"`
	AssetCount int    `json:"assetCount"`
}
