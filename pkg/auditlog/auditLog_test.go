package auditlog

import (
	"context"
	"errors"
	"testing"

	"inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) error {
	args := m.Called(ctx, auditLog, data)
	return args.Error(0)
}

func TestLogPersistsActionForResource(t *testing.T) {
	persister := new(MockPersister)
	auditLog := NewAuditLog(persister, zap.NewNop())
	asset := &models.Asset{ID: "a-1", Name: "HP LaserJet"}
	data := map[string]interface{}{"msg": "Asset moved to trash"}

	persister.On("PersistLog", mock.Anything, models.AuditLog{
		ResourceID:   "a-1",
		ResourceType: "asset",
		Action:       "trash",
	}, data).Return(nil).Once()

	auditLog.Log(context.Background(), "trash", data, asset)

	persister.AssertExpectations(t)
}

func TestLogSwallowsPersistenceErrors(t *testing.T) {
	persister := new(MockPersister)
	auditLog := NewAuditLog(persister, zap.NewNop())

	persister.On("PersistLog", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	assert.NotPanics(t, func() {
		auditLog.Log(context.Background(), "create", nil, &models.Asset{ID: "a-2"})
	})
	persister.AssertExpectations(t)
}
