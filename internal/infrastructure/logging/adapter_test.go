package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/logging"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

func TestAdapter_CarriesFieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	a := logging.NewAdapter(logger.MustNew(logger.Config{Output: &buf}))

	ctx := logger.ContextWithRequestID(context.Background(), "req-7")
	a.With("material", "gold").WithContext(ctx).Info("Conversion completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "gold", entry["material"])
	assert.Equal(t, "req-7", entry["request_id"])
}
