package logging_test

import (
	"context"
	"testing"

	"github.com/egodevrjm/songstore/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithSong adds song to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithSong(ctx, "red_dirt_road")

		// Extract logger and verify it has the song field
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFamily adds index family to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithFamily(ctx, "themes")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "load_catalog")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithPath adds remote path to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithPath(ctx, "songs/red_dirt_road.json")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"branch":     "main",
			"request_id": "abc-def",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		// First call should create a new logger
		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		// Add song and get logger again
		ctx = logging.WithSong(ctx, "canyons_cry")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithSong(ctx, "soul_food")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithSong(ctx, "red_dirt_road")
		ctx = logging.WithFamily(ctx, "venues")
		ctx = logging.WithOperation(ctx, "publish_indexes")
		ctx = logging.WithPath(ctx, "venues/honky_tonk.json")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
