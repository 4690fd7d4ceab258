package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	assert.True(t, JobStatusSuccess.Terminal())
	assert.True(t, JobStatusFailure.Terminal())
	assert.True(t, JobStatusRevoked.Terminal())
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusStarted.Terminal())
	assert.False(t, JobStatusRetry.Terminal())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from JobStatus
		to   JobStatus
		ok   bool
	}{
		{JobStatusPending, JobStatusStarted, true},
		// Redelivery of a crashed attempt restarts from STARTED.
		{JobStatusStarted, JobStatusStarted, true},
		{JobStatusStarted, JobStatusSuccess, true},
		{JobStatusStarted, JobStatusFailure, true},
		{JobStatusStarted, JobStatusRetry, true},
		{JobStatusRetry, JobStatusStarted, true},
		{JobStatusPending, JobStatusRevoked, true},
		{JobStatusStarted, JobStatusRevoked, true},
		{JobStatusRetry, JobStatusRevoked, true},

		// No transition may skip STARTED.
		{JobStatusPending, JobStatusSuccess, false},
		{JobStatusPending, JobStatusFailure, false},
		{JobStatusRetry, JobStatusSuccess, false},

		// Terminal states never move again.
		{JobStatusSuccess, JobStatusStarted, false},
		{JobStatusFailure, JobStatusRetry, false},
		{JobStatusRevoked, JobStatusStarted, false},
		{JobStatusSuccess, JobStatusRevoked, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSnapshotMarshalsNullFields(t *testing.T) {
	// Clients poll the status payload before the job finishes; result and
	// error must show up as explicit nulls, not vanish from the document.
	data, err := json.Marshal(JobSnapshot{JobID: "job-1", Status: JobStatusPending})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result":null`)
	assert.Contains(t, string(data), `"error":null`)

	reason := "classifier timeout"
	data, err = json.Marshal(JobSnapshot{JobID: "job-1", Status: JobStatusFailure, Error: &reason})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"classifier timeout"`)
	assert.Contains(t, string(data), `"result":null`)
}

func TestEncodePredictions(t *testing.T) {
	assert.Equal(t, "", EncodePredictions(nil))

	encoded := EncodePredictions([]Prediction{{Label: "change_pin", Score: 0.91}})
	assert.Contains(t, encoded, `"change_pin"`)
	assert.Contains(t, encoded, `0.91`)
}
