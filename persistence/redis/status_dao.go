package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	rd "github.com/go-redis/redis/v9"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/util"
	"go.uber.org/zap"
)

const WORKFLOW_STATUS string = "WORKFLOW_STATUS"
const RESUMABLE string = "RESUMABLE"

var _ persistence.StatusStore = new(redisStatusDao)

type redisStatusDao struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowStatusRecord]
}

func NewRedisStatusDao(conf Config) *redisStatusDao {
	return &redisStatusDao{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowStatusRecord](),
	}
}

func (d *redisStatusDao) Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error) {
	key := d.getNamespaceKey(WORKFLOW_STATUS, workflowId)
	val, err := d.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, persistence.ErrNotFound
		}
		logger.Error("error in getting workflow status", zap.String("workflowId", workflowId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return d.encoderDecoder.Decode([]byte(val))
}

// Save writes the record and keeps the resumable index in step with it in one transaction.
func (d *redisStatusDao) Save(ctx context.Context, record *model.WorkflowStatusRecord) error {
	data, err := d.encoderDecoder.Encode(*record)
	if err != nil {
		return err
	}
	key := d.getNamespaceKey(WORKFLOW_STATUS, record.WorkflowId)
	resumableKey := d.getNamespaceKey(RESUMABLE)
	_, err = d.redisClient.TxPipelined(ctx, func(pipe rd.Pipeliner) error {
		pipe.Set(ctx, key, data, 0)
		if record.IsPaused() && record.ResumeTimestamp != nil {
			pipe.ZAdd(ctx, resumableKey, rd.Z{
				Score:  float64(record.ResumeTimestamp.UnixMilli()),
				Member: record.WorkflowId,
			})
		} else {
			pipe.ZRem(ctx, resumableKey, record.WorkflowId)
		}
		return nil
	})
	if err != nil {
		logger.Error("error in saving workflow status", zap.String("workflowId", record.WorkflowId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *redisStatusDao) ListResumable(ctx context.Context, before time.Time, limit int) ([]*model.WorkflowStatusRecord, error) {
	opt := &rd.ZRangeBy{
		Min: strconv.Itoa(0),
		Max: strconv.FormatInt(before.UnixMilli(), 10),
	}
	if limit > 0 {
		opt.Count = int64(limit)
	}
	ids, err := d.redisClient.ZRangeByScore(ctx, d.getNamespaceKey(RESUMABLE), opt).Result()
	if err != nil {
		logger.Error("error in listing resumable workflows", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	result := make([]*model.WorkflowStatusRecord, 0, len(ids))
	for _, id := range ids {
		record, err := d.Get(ctx, id)
		if errors.Is(err, persistence.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if record.IsPaused() {
			result = append(result, record)
		}
	}
	return result, nil
}
