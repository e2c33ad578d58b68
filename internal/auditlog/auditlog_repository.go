package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"inventory/internal/repository"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func (r *AuditLogRepository) PersistLog(ctx context.Context, auditlog models.AuditLog, auditLogData interface{}) error {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   auditlog.ResourceID,
			"resource_type": auditlog.ResourceType,
			"action":        auditlog.Action,
			"data":          string(dataJSON),
		})

	if _, err = query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) GetResourceLog(ctx context.Context, id string, resourceType string) ([]models.AuditLog, error) {
	var auditLogs []models.AuditLog
	err := r.resourceLogQuery(id, resourceType).Executor().ScanStructsContext(ctx, &auditLogs)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range auditLogs {
		auditLogs[i].LoadFromDB()
	}

	return auditLogs, nil
}

func (r *AuditLogRepository) resourceLogQuery(id string, resourceType string) *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.data").As("data"),
			goqu.I("a.created_at").As("created_at"),
		).
		Where(goqu.Ex{
			"a.resource_id":   id,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.created_at").Asc())
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}
