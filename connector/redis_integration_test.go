package connector_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/idforge/testkit"
)

func TestRedisConnector_Container(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	conn := testkit.NewRedisContainerConnector(t)
	kctx := testkit.NewContext(t, 30*time.Second)

	assert.True(t, conn.IsHealthy())
	require.NoError(t, conn.Connect(kctx), "Connect 应当幂等")
	require.NoError(t, conn.HealthCheck(kctx))

	key := "connector:" + testkit.NewID()
	require.NoError(t, conn.GetClient().Set(kctx, key, "v", 0).Err())
	got, err := conn.GetClient().Get(kctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
