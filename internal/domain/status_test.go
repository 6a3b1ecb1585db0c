package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	legal := map[JobStatus][]JobStatus{
		JobBroadcasting: {JobAssigned, JobExpired, JobCancelled},
		JobAssigned:     {JobCompleted, JobCancelled, JobBroadcasting},
	}
	for _, from := range allowedStatuses {
		for _, to := range allowedStatuses {
			want := false
			for _, v := range legal[from] {
				if v == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.False(t, JobBroadcasting.Terminal())
	require.False(t, JobAssigned.Terminal())
	require.True(t, JobCompleted.Terminal())
	require.True(t, JobExpired.Terminal())
	require.True(t, JobCancelled.Terminal())
	require.False(t, JobStatus("lost").Valid())
}

func TestTransportType_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, TransportTypeFoot.Valid())
	require.True(t, TransportTypeCar.Valid())
	require.False(t, CourierTransportType("bike").Valid())
}

func TestJob_CloneIsDeep(t *testing.T) {
	t.Parallel()

	courier := int64(3)
	at := time.Now()
	j := &Job{ID: "j1", BroadcastSet: []int64{1, 2}, Declined: []int64{2}, AssignedCourier: &courier, AcceptedAt: &at}
	cp := j.Clone()

	cp.BroadcastSet[0] = 99
	cp.Declined[0] = 5
	*cp.AssignedCourier = 7
	require.Equal(t, int64(1), j.BroadcastSet[0])
	require.Equal(t, int64(3), *j.AssignedCourier)
	require.True(t, j.Offered(2))
	require.False(t, j.Offered(99))
	require.True(t, j.HasDeclined(2))
	require.False(t, j.HasDeclined(5))

	var nilJob *Job
	require.Nil(t, nilJob.Clone())
}
