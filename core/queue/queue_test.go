package queue

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	GroupID string `json:"group_id"`
}

func TestNewTaskAndDecode(t *testing.T) {
	task, err := NewTask("notification:group_created", samplePayload{GroupID: "g-1"})
	require.NoError(t, err)
	assert.Equal(t, "notification:group_created", task.Type())

	var got samplePayload
	require.NoError(t, Decode(task, &got))
	assert.Equal(t, "g-1", got.GroupID)
}

func TestDecodeInvalidPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask("notification:group_created", []byte("{"))

	var got samplePayload
	err := Decode(task, &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
