package redis

import (
	"context"

	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/util"
	"go.uber.org/zap"
)

const AUDIT string = "AUDIT"

var _ persistence.AuditStore = new(redisAuditDao)

type redisAuditDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.AuditEntry]
}

func NewRedisAuditDao(conf Config) *redisAuditDao {
	return &redisAuditDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.AuditEntry](),
	}
}

func (d *redisAuditDao) Append(ctx context.Context, entry model.AuditEntry) error {
	data, err := d.encoderDecoder.Encode(entry)
	if err != nil {
		return err
	}
	key := d.getNamespaceKey(AUDIT, entry.WorkflowId)
	if err := d.redisClient.RPush(ctx, key, data).Err(); err != nil {
		logger.Error("error in appending audit entry", zap.String("workflowId", entry.WorkflowId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *redisAuditDao) List(ctx context.Context, workflowId string) ([]model.AuditEntry, error) {
	key := d.getNamespaceKey(AUDIT, workflowId)
	items, err := d.redisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logger.Error("error in listing audit entries", zap.String("workflowId", workflowId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return util.DecodeAll[model.AuditEntry](d.encoderDecoder, items)
}
