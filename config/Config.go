package config

import "time"

type StorageType string

type QueueType string

type AuditSinkType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"
const STORAGE_TYPE_POSTGRES StorageType = "postgres"

const QUEUE_TYPE_REDIS QueueType = "redis"
const QUEUE_TYPE_INMEM QueueType = "memory"

const AUDIT_SINK_STORE AuditSinkType = "store"
const AUDIT_SINK_FILE AuditSinkType = "file"
const AUDIT_SINK_BOTH AuditSinkType = "both"

const DEFAULT_DATETIME_PATTERN = "2006-01-02T15:04:05.000Z"

type Config struct {
	RedisConfig       RedisStorageConfig
	PostgresConfig    PostgresStorageConfig
	HttpPort          int
	ContextPath       string
	StorageType       StorageType
	QueueType         QueueType
	PartitionCount    int
	LogLevel          string
	WorkflowAction    WorkflowActionConfig
	AuditConfig       AuditConfig
	ResumeSweepConfig ResumeSweepConfig
	ActionQueueConfig ActionQueueConfig
}

type WorkflowActionConfig struct {
	ApiId              string
	Version            string
	DateTimePattern    string
	RequestGracePeriod time.Duration
	CompletionPolicy   string
}

type AuditConfig struct {
	SinkType     AuditSinkType
	FileName     string
	Async        bool
	BufferSize   int
	MaxRetryTime time.Duration
}

type ResumeSweepConfig struct {
	Enabled         bool
	IntervalSeconds int
	BatchSize       int
}

type ActionQueueConfig struct {
	PipelineQueue   string
	CompletionQueue string
	BeginningStage  string
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
	Password  string
	PoolSize  int
}

type PostgresStorageConfig struct {
	ConnString string
	Migrate    bool
}
