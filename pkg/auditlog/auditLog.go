package auditlog

import (
	"context"

	"inventory/pkg/models"

	"go.uber.org/zap"
)

type Persister interface {
	PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	r      Persister
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log records action against item. A failed write is logged and otherwise ignored so the
// audited operation is never rolled back because of its audit entry.
func (a *Auditlog) Log(ctx context.Context, action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(ctx, auditLog, data); err != nil {
		a.logger.Warn("Unable to create AuditLog entry",
			zap.String("resource_id", auditLog.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Created AuditLog entry",
		zap.String("resource_id", auditLog.ResourceID),
		zap.String("action", action),
	)
}

func NewAuditLog(persister Persister, logger *zap.Logger) *Auditlog {
	return &Auditlog{r: persister, logger: logger}
}
