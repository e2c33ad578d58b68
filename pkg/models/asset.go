package models

import (
	"database/sql"
	"time"

	"inventory/pkg/metadata"
	"inventory/pkg/notes"
)

type Asset struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Type         metadata.AssetType `json:"type"`
	Model        string             `json:"model,omitempty"`
	SerialNumber string             `json:"serialNumber,omitempty"`
	PurchaseDate string             `json:"purchaseDate,omitempty"`
	Status       metadata.Status    `json:"status"`
	AssignedTo   string             `json:"assignedTo,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	LastUpdated  string             `json:"lastUpdated"`
}

type TrashedAsset struct {
	Asset
	DeletedAt time.Time `json:"deletedAt"`
}

// AssetRequest is the caller-supplied part of an asset: everything except id and
// lastUpdated, which the store owns.
type AssetRequest struct {
	Name         string        `json:"name" binding:"required"`
	Type         string        `json:"type" binding:"required"`
	Model        string        `json:"model"`
	SerialNumber string        `json:"serialNumber"`
	PurchaseDate string        `json:"purchaseDate"`
	Status       string        `json:"status"`
	AssignedTo   string        `json:"assignedTo"`
	Notes        string        `json:"notes"`
	Details      *notes.Fields `json:"details,omitempty"`
}

// AssetView is an asset together with its decoded notes.
type AssetView struct {
	Asset
	NotesKind    notes.Kind `json:"notesKind"`
	GeneralNotes string     `json:"generalNotes"`
	Details      any        `json:"details,omitempty"`
}

func (a Asset) View() AssetView {
	payload := a.NotesPayload()
	view := AssetView{
		Asset:        a,
		NotesKind:    payload.Kind(),
		GeneralNotes: payload.GeneralNotes(),
	}
	if payload.Kind() != notes.KindPlainText {
		view.Details = payload
	}
	return view
}

func (a Asset) NotesPayload() notes.Payload {
	return notes.Decode(a.Type, a.Notes)
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}

func (a *TrashedAsset) CreateLogView() AuditLog {
	return a.Asset.CreateLogView()
}

type FlatAssetRecord struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Model        sql.NullString `db:"model"`
	SerialNumber sql.NullString `db:"serial_number"`
	PurchaseDate sql.NullString `db:"purchase_date"`
	Status       string         `db:"status"`
	AssignedTo   sql.NullString `db:"assigned_to"`
	Notes        sql.NullString `db:"notes"`
	LastUpdated  time.Time      `db:"last_updated"`
}

type FlatTrashedAssetRecord struct {
	FlatAssetRecord
	DeletedAt time.Time `db:"deleted_at"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	return Asset{
		ID:           fa.ID,
		Name:         fa.Name,
		Type:         metadata.AssetType(fa.Type),
		Model:        fa.Model.String,
		SerialNumber: fa.SerialNumber.String,
		PurchaseDate: fa.PurchaseDate.String,
		Status:       metadata.Status(fa.Status),
		AssignedTo:   fa.AssignedTo.String,
		Notes:        fa.Notes.String,
		LastUpdated:  metadata.FormatDate(fa.LastUpdated),
	}
}

func (ft *FlatTrashedAssetRecord) TransformToTrashedAsset() TrashedAsset {
	return TrashedAsset{
		Asset:     ft.FlatAssetRecord.TransformToAsset(),
		DeletedAt: ft.DeletedAt,
	}
}
