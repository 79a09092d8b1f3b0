package perf

import (
	"kafkaperf/models"
	"kafkaperf/pkg/services"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	hostname   string
	lines      []string
	captureErr error

	mut      sync.Mutex
	commands []string
	freed    int
}

func (f *fakeNode) Hostname() string {
	return f.hostname
}

func (f *fakeNode) Capture(command string) (<-chan string, error) {
	f.mut.Lock()
	f.commands = append(f.commands, command)
	f.mut.Unlock()

	if f.captureErr != nil {
		return nil, f.captureErr
	}

	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, line := range f.lines {
			ch <- line
		}
	}()
	return ch, nil
}

func (f *fakeNode) Run(command string) ([]string, error) {
	f.mut.Lock()
	f.commands = append(f.commands, command)
	f.mut.Unlock()
	return nil, nil
}

func (f *fakeNode) CreateFile(path string, content string) error {
	return nil
}

func (f *fakeNode) Free() {
	f.mut.Lock()
	f.freed++
	f.mut.Unlock()
}

func (f *fakeNode) freeCount() int {
	f.mut.Lock()
	defer f.mut.Unlock()
	return f.freed
}

func producerBench() *ProducerPerf {
	return &ProducerPerf{
		Kafka:      services.NewKafka("worker1:9092", "zk1:2181"),
		Topic:      "test-topic",
		NumRecords: 1000,
		RecordSize: 100,
		Throughput: 10000,
	}
}

func TestRunProducesSlotPerNode(t *testing.T) {
	nodes := []Node{
		&fakeNode{hostname: "host1", lines: []string{"starting up", summaryLine}},
		&fakeNode{hostname: "host2", lines: []string{"starting up", summaryLine}},
		&fakeNode{hostname: "host3", lines: []string{"starting up", summaryLine}},
	}

	run := NewRun(producerBench(), nodes)
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	require.Len(t, run.Results(), 3)
	require.Len(t, run.Samples(), 3)
	require.Len(t, run.Errs(), 3)

	for idx := range nodes {
		require.NoError(t, run.Errs()[idx])
		require.NotNil(t, run.Results()[idx])
		assert.Equal(t, 1000.0, run.Results()[idx][models.MetricRecords])
	}

	require.NoError(t, run.Stop())
}

func TestRunNodesFreedOnlyByStop(t *testing.T) {
	nodes := []*fakeNode{
		{hostname: "host1", lines: []string{summaryLine}},
		{hostname: "host2", lines: []string{summaryLine}},
	}

	run := NewRun(producerBench(), []Node{nodes[0], nodes[1]})
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	// A finished worker must not have released its node
	for _, node := range nodes {
		assert.Equal(t, 0, node.freeCount())
	}

	require.NoError(t, run.Stop())
	for _, node := range nodes {
		assert.Equal(t, 1, node.freeCount())
	}
}

func TestRunLifecycle(t *testing.T) {
	newRun := func() *Run {
		return NewRun(producerBench(), []Node{&fakeNode{hostname: "host1", lines: []string{summaryLine}}})
	}

	t.Run("WaitBeforeStart", func(t *testing.T) {
		run := newRun()
		assert.True(t, errors.Is(run.Wait(), ErrInvalidState))
	})

	t.Run("StopBeforeWait", func(t *testing.T) {
		run := newRun()
		require.NoError(t, run.Start())
		assert.True(t, errors.Is(run.Stop(), ErrInvalidState))

		require.NoError(t, run.Wait())
		require.NoError(t, run.Stop())
	})

	t.Run("DoubleStart", func(t *testing.T) {
		run := newRun()
		require.NoError(t, run.Start())
		assert.True(t, errors.Is(run.Start(), ErrInvalidState))
	})

	t.Run("DoubleWait", func(t *testing.T) {
		run := newRun()
		require.NoError(t, run.Start())
		require.NoError(t, run.Wait())
		assert.True(t, errors.Is(run.Wait(), ErrInvalidState))
	})

	t.Run("DoubleStop", func(t *testing.T) {
		run := newRun()
		require.NoError(t, run.Start())
		require.NoError(t, run.Wait())
		require.NoError(t, run.Stop())
		assert.True(t, errors.Is(run.Stop(), ErrInvalidState))
	})
}

func TestRunTransportFailureIsContained(t *testing.T) {
	nodes := []Node{
		&fakeNode{hostname: "host1", lines: []string{summaryLine}},
		&fakeNode{hostname: "host2", captureErr: errors.New("connection refused")},
		&fakeNode{hostname: "host3", lines: []string{summaryLine}},
	}

	run := NewRun(producerBench(), nodes)
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	assert.NotNil(t, run.Results()[0])
	assert.NotNil(t, run.Results()[2])
	require.NoError(t, run.Errs()[0])
	require.NoError(t, run.Errs()[2])

	assert.Nil(t, run.Results()[1])
	require.Error(t, run.Errs()[1])
	assert.Contains(t, run.Errs()[1].Error(), "connection refused")

	require.NoError(t, run.Stop())
}

func TestRunBadLastLineIsContained(t *testing.T) {
	nodes := []Node{
		&fakeNode{hostname: "host1", lines: []string{summaryLine, "INFO shutting down"}},
	}

	run := NewRun(producerBench(), nodes)
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	assert.Nil(t, run.Results()[0])
	require.Error(t, run.Errs()[0])
	assert.True(t, errors.Is(run.Errs()[0], ErrNotMetricsLine))
}

func TestProducerIntermediateStats(t *testing.T) {
	intermediate := "500 records, 250.0 records/sec (1.25 MB/sec), 9.0 ms avg, 45.0 ms max, " +
		"7.0 ms 50th, 18.0 ms 95th, 28.0 ms 99th, 38.0 ms 99.9th"

	node := &fakeNode{hostname: "host1", lines: []string{
		"starting up",
		intermediate,
		"some unrelated log message",
		summaryLine,
	}}

	bench := producerBench()
	bench.IntermediateStats = true

	run := NewRun(bench, []Node{node})
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	require.NoError(t, run.Errs()[0])
	require.NotNil(t, run.Results()[0])
	assert.Equal(t, 1000.0, run.Results()[0][models.MetricRecords])

	// The intermediate line and the final line both parse as samples;
	// noise lines are skipped silently.
	require.Len(t, run.Samples()[0], 2)
	assert.Equal(t, 500.0, run.Samples()[0][0][models.MetricRecords])
	assert.Equal(t, 1000.0, run.Samples()[0][1][models.MetricRecords])
}

func TestEndToEndLatencyExtraction(t *testing.T) {
	node := &fakeNode{hostname: "host1", lines: []string{
		"Sending 10000 messages",
		"Avg latency: 12.3 ms",
		"Percentiles: 50th = 10.0ms, 99th = 30.0ms, 99.9th = 40.0",
	}}

	bench := &EndToEndLatency{
		Kafka:      services.NewKafka("worker1:9092", "zk1:2181"),
		Topic:      "test-topic",
		NumRecords: 10000,
	}

	run := NewRun(bench, []Node{node})
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	require.NoError(t, run.Errs()[0])
	result := run.Results()[0]
	require.NotNil(t, result)

	assert.Equal(t, 12.3, result[models.MetricLatencyAvgMs])
	assert.Equal(t, 10.0, result[models.MetricLatency50th])
	assert.Equal(t, 30.0, result[models.MetricLatency99th])
	assert.Equal(t, 40.0, result[models.MetricLatency999th])
}

func TestEndToEndLatencyNoSummary(t *testing.T) {
	node := &fakeNode{hostname: "host1", lines: []string{"nothing useful"}}

	bench := &EndToEndLatency{
		Kafka:      services.NewKafka("worker1:9092", "zk1:2181"),
		Topic:      "test-topic",
		NumRecords: 10000,
	}

	run := NewRun(bench, []Node{node})
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	assert.Nil(t, run.Results()[0])
	require.Error(t, run.Errs()[0])
}

func TestLogOnlyBenchmarksLeaveSlotEmpty(t *testing.T) {
	node := &fakeNode{hostname: "host1", lines: []string{"Estimated value of Pi is 3.14"}}

	bench := &HadoopPerf{Hadoop: services.NewHadoop("/opt/hadoop-cdh", false)}

	run := NewRun(bench, []Node{node})
	require.NoError(t, run.Start())
	require.NoError(t, run.Wait())

	assert.Nil(t, run.Results()[0])
	assert.NoError(t, run.Errs()[0])

	// conf distribution ran before the job
	node.mut.Lock()
	defer node.mut.Unlock()
	require.NotEmpty(t, node.commands)
	assert.Contains(t, node.commands[0], "mkdir -p /mnt")
}
