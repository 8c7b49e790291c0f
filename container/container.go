package container

import (
	"context"
	"fmt"

	"github.com/mohitkumar/workflowaction/config"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/partition"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/persistence/memory"
	pg "github.com/mohitkumar/workflowaction/persistence/postgres"
	rd "github.com/mohitkumar/workflowaction/persistence/redis"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type DIContiner struct {
	initialized bool
	statusStore persistence.StatusStore
	auditStore  persistence.AuditStore
	queue       persistence.Queue
	ring        *partition.Ring
	closers     []func() error
}

func (d *DIContiner) setInitialized() {
	d.initialized = true
}

func NewDiContainer(ring *partition.Ring) *DIContiner {
	return &DIContiner{
		initialized: false,
		ring:        ring,
	}
}

func (d *DIContiner) Init(ctx context.Context, conf config.Config) error {
	rdConf := rd.Config{
		Addrs:     conf.RedisConfig.Addrs,
		Namespace: conf.RedisConfig.Namespace,
		Password:  conf.RedisConfig.Password,
		PoolSize:  conf.RedisConfig.PoolSize,
	}

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		statusDao := rd.NewRedisStatusDao(rdConf)
		auditDao := rd.NewRedisAuditDao(rdConf)
		d.statusStore = statusDao
		d.auditStore = auditDao
		d.closers = append(d.closers, statusDao.Close, auditDao.Close)
	case config.STORAGE_TYPE_INMEM:
		d.statusStore = memory.NewStatusStore()
		d.auditStore = memory.NewAuditStore()
	case config.STORAGE_TYPE_POSTGRES:
		pool, err := pg.Connect(ctx, conf.PostgresConfig.ConnString)
		if err != nil {
			return persistence.StorageLayerError{Message: fmt.Sprintf("error connecting to postgres: %v", err)}
		}
		if conf.PostgresConfig.Migrate {
			if err := pg.Migrate(ctx, pool); err != nil {
				pool.Close()
				return persistence.StorageLayerError{Message: fmt.Sprintf("error migrating postgres schema: %v", err)}
			}
		}
		d.statusStore = pg.NewPostgresStatusStore(pool)
		d.auditStore = pg.NewPostgresAuditStore(pool)
		d.closers = append(d.closers, func() error {
			pool.Close()
			return nil
		})
	default:
		return fmt.Errorf("unknown storage type %s", conf.StorageType)
	}

	switch conf.QueueType {
	case config.QUEUE_TYPE_REDIS:
		q := rd.NewRedisQueue(rdConf)
		d.queue = q
		d.closers = append(d.closers, q.Close)
	case config.QUEUE_TYPE_INMEM:
		d.queue = memory.NewQueue()
	default:
		return fmt.Errorf("unknown queue type %s", conf.QueueType)
	}
	d.setInitialized()
	logger.Info("storage initialized", zap.String("storage", string(conf.StorageType)), zap.String("queue", string(conf.QueueType)))
	return nil
}

func (d *DIContiner) GetStatusStore() persistence.StatusStore {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.statusStore
}

func (d *DIContiner) GetAuditStore() persistence.AuditStore {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.auditStore
}

func (d *DIContiner) GetQueue() persistence.Queue {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.queue
}

func (d *DIContiner) GetRing() *partition.Ring {
	return d.ring
}

func (d *DIContiner) Close() error {
	var errs error
	for _, fn := range d.closers {
		errs = multierr.Append(errs, fn())
	}
	d.closers = nil
	return errs
}
