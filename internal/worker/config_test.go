package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_RequiresName(t *testing.T) {
	_, err := buildConfig()
	require.Error(t, err)
}

func TestBuildConfig_RejectsFeedbackIntervalAboveWorkTimeout(t *testing.T) {
	_, err := buildConfig(
		WithName("worker-1"),
		WithFeedbackInterval(20*time.Second),
		WithWorkTimeout(10*time.Second),
	)
	require.Error(t, err)
}

func TestBuildConfig_RejectsNonPositiveWorkerCount(t *testing.T) {
	_, err := buildConfig(WithName("worker-1"), WithWorkerCount(0))
	require.Error(t, err)
}

func TestBuildConfig_AppliesDefaults(t *testing.T) {
	cfg, err := buildConfig(WithName("worker-1"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 5*time.Second, cfg.FeedbackInterval)
	assert.Equal(t, 10*time.Second, cfg.WorkTimeout)
}

func TestBuildConfig_OptionsOverrideDefaults(t *testing.T) {
	cfg, err := buildConfig(
		WithName("worker-1"),
		WithWorkerCount(2),
		WithFeedbackInterval(time.Second),
		WithWorkTimeout(3*time.Second),
		WithFindInterval(10*time.Millisecond),
		WithRequeueInterval(10*time.Millisecond),
		WithBackoffInterval(10*time.Millisecond),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, time.Second, cfg.FeedbackInterval)
	assert.Equal(t, 3*time.Second, cfg.WorkTimeout)
}
