package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/mohitkumar/workflowaction/config"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		HttpPort:       freePort(t),
		ContextPath:    "/registrationprocessor/v1/workflowmanager",
		StorageType:    config.STORAGE_TYPE_INMEM,
		QueueType:      config.QUEUE_TYPE_INMEM,
		PartitionCount: 4,
		WorkflowAction: config.WorkflowActionConfig{
			ApiId:           "mosip.registration.workflow.action",
			Version:         "1.0",
			DateTimePattern: config.DEFAULT_DATETIME_PATTERN,
		},
		AuditConfig: config.AuditConfig{
			SinkType: config.AUDIT_SINK_BOTH,
			FileName: filepath.Join(t.TempDir(), "audit.log"),
			Async:    true,
		},
		ResumeSweepConfig: config.ResumeSweepConfig{Enabled: true, IntervalSeconds: 60},
	}
}

func TestAgent(t *testing.T) {
	conf := testConfig(t)
	a, err := New(conf)
	require.NoError(t, err)
	require.NoError(t, a.Start())
	defer func() {
		require.NoError(t, a.Shutdown())
		require.NoError(t, a.Shutdown())
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d%s", conf.HttpPort, conf.ContextPath)
	require.Eventually(t, func() bool {
		res, err := http.Get(base + "/workflow/none")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusNotFound
	}, 5*time.Second, 20*time.Millisecond)

	record := []byte(`{"workflowId":"W1","statusCode":"PAUSED","registrationStageName":"osi-validator-stage"}`)
	req, err := http.NewRequest(http.MethodPut, base+"/workflow", bytes.NewReader(record))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := []byte(`{"request":{"workflowIds":["W1"],"workflowAction":"STOP_PROCESSING"}}`)
	res, err = http.Post(base+"/workflowaction", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var actionRes model.WorkflowActionResponseDTO
	require.NoError(t, json.NewDecoder(res.Body).Decode(&actionRes))
	require.True(t, actionRes.IsSuccess())
	require.Equal(t, "mosip.registration.workflow.action", actionRes.Id)

	res, err = http.Get(base + "/workflow/W1")
	require.NoError(t, err)
	defer res.Body.Close()
	var saved model.WorkflowStatusRecord
	require.NoError(t, json.NewDecoder(res.Body).Decode(&saved))
	require.Equal(t, model.REJECTED, saved.StatusCode)
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	conf := testConfig(t)
	conf.WorkflowAction.CompletionPolicy = "sometimes"
	_, err := New(conf)
	require.Error(t, err)
}
