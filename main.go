package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mohitkumar/workflowaction/agent"
	"github.com/mohitkumar/workflowaction/config"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("redis-password", "", "redis password")
	cmd.Flags().Int("redis-pool-size", 0, "redis connection pool size, 0 uses the client default")
	cmd.Flags().String("namespace", "workflowaction", "namespace used in storage")
	cmd.Flags().String("postgres-conn", "postgres://localhost:5432/registration", "postgres connection string")
	cmd.Flags().Bool("postgres-migrate", true, "create postgres tables on startup")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("context-path", "/registrationprocessor/v1/workflowmanager", "path prefix of rest endpoints")
	cmd.Flags().String("storage-impl", "redis", "implementation of underline storage (redis, postgres, memory)")
	cmd.Flags().String("queue-impl", "redis", "implementation of underline queue (redis, memory)")
	cmd.Flags().Int("partition-count", 16, "number of queue partitions")
	cmd.Flags().String("api-id", "mosip.registration.workflow.action", "id of the workflow action api")
	cmd.Flags().String("api-version", "1.0", "version of the workflow action api")
	cmd.Flags().String("datetime-pattern", config.DEFAULT_DATETIME_PATTERN, "layout of request and response times")
	cmd.Flags().Duration("request-grace-period", 0, "allowed drift of requesttime from now, 0 disables the check")
	cmd.Flags().String("completion-policy", "lenient", "batch completion policy (lenient, partial, all-or-nothing)")
	cmd.Flags().String("audit-sink", "store", "audit sink (store, file, both)")
	cmd.Flags().String("audit-file", "audit.log", "audit log file used by the file sink")
	cmd.Flags().Bool("audit-async", false, "deliver audit entries asynchronously")
	cmd.Flags().Int("audit-buffer-size", 1024, "async audit buffer size")
	cmd.Flags().Duration("audit-max-retry-time", 0, "max time spent retrying one audit entry, 0 uses the default")
	cmd.Flags().Bool("resume-sweep-enabled", true, "resume paused workflows whose resume time elapsed")
	cmd.Flags().Int("resume-sweep-interval", 60, "seconds between resume sweeps")
	cmd.Flags().Int("resume-sweep-batch-size", 100, "max workflows resumed per sweep")
	cmd.Flags().String("pipeline-queue", "", "queue receiving resumed workflows")
	cmd.Flags().String("completion-queue", "", "queue receiving completed workflows")
	cmd.Flags().String("beginning-stage", "", "first stage of the registration pipeline")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err = viper.ReadInConfig(); err != nil {
			// it's ok if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return err
			}
		}
	}

	c.cfg.LogLevel = viper.GetString("log-level")
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Password = viper.GetString("redis-password")
	c.cfg.RedisConfig.PoolSize = viper.GetInt("redis-pool-size")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.PostgresConfig.ConnString = viper.GetString("postgres-conn")
	c.cfg.PostgresConfig.Migrate = viper.GetBool("postgres-migrate")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.ContextPath = viper.GetString("context-path")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.QueueType = config.QueueType(viper.GetString("queue-impl"))
	c.cfg.PartitionCount = viper.GetInt("partition-count")
	c.cfg.WorkflowAction.ApiId = viper.GetString("api-id")
	c.cfg.WorkflowAction.Version = viper.GetString("api-version")
	c.cfg.WorkflowAction.DateTimePattern = viper.GetString("datetime-pattern")
	c.cfg.WorkflowAction.RequestGracePeriod = viper.GetDuration("request-grace-period")
	c.cfg.WorkflowAction.CompletionPolicy = viper.GetString("completion-policy")
	c.cfg.AuditConfig.SinkType = config.AuditSinkType(viper.GetString("audit-sink"))
	c.cfg.AuditConfig.FileName = viper.GetString("audit-file")
	c.cfg.AuditConfig.Async = viper.GetBool("audit-async")
	c.cfg.AuditConfig.BufferSize = viper.GetInt("audit-buffer-size")
	c.cfg.AuditConfig.MaxRetryTime = viper.GetDuration("audit-max-retry-time")
	c.cfg.ResumeSweepConfig.Enabled = viper.GetBool("resume-sweep-enabled")
	c.cfg.ResumeSweepConfig.IntervalSeconds = viper.GetInt("resume-sweep-interval")
	c.cfg.ResumeSweepConfig.BatchSize = viper.GetInt("resume-sweep-batch-size")
	c.cfg.ActionQueueConfig.PipelineQueue = viper.GetString("pipeline-queue")
	c.cfg.ActionQueueConfig.CompletionQueue = viper.GetString("completion-queue")
	c.cfg.ActionQueueConfig.BeginningStage = viper.GetString("beginning-stage")
	return logger.Init(c.cfg.LogLevel)
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		return err
	}
	if err = agent.Start(); err != nil {
		return err
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "workflowaction",
		Short:   "applies resume, restart and discard actions to paused registration workflows",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
