package domain

// JobStatus is the lifecycle state of a dispatch job.
type JobStatus string

// List of possible job statuses
const (
	JobBroadcasting JobStatus = "broadcasting"
	JobAssigned     JobStatus = "assigned"
	JobCompleted    JobStatus = "completed"
	JobExpired      JobStatus = "expired"
	JobCancelled    JobStatus = "cancelled"
)

// List of possible courier transport types
const (
	TransportTypeFoot    CourierTransportType = "on_foot"
	TransportTypeScooter CourierTransportType = "scooter"
	TransportTypeCar     CourierTransportType = "car"
)

var allowedStatuses = [...]JobStatus{
	JobBroadcasting, JobAssigned, JobCompleted, JobExpired, JobCancelled,
}

var allowedTransportTypes = [...]CourierTransportType{
	TransportTypeFoot, TransportTypeScooter, TransportTypeCar,
}

// transitions lists the reachable states for every non-terminal status.
// assigned -> broadcasting is the explicit reopen.
var transitions = map[JobStatus][]JobStatus{
	JobBroadcasting: {JobAssigned, JobExpired, JobCancelled},
	JobAssigned:     {JobCompleted, JobCancelled, JobBroadcasting},
}

// Valid checks if the JobStatus is valid
func (s JobStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions can happen.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobExpired || s == JobCancelled
}

// CanTransition reports whether from -> to is a legal single step.
func CanTransition(from, to JobStatus) bool {
	for _, v := range transitions[from] {
		if v == to {
			return true
		}
	}
	return false
}

// Valid checks if the CourierTransportType is valid
func (t CourierTransportType) Valid() bool {
	for _, v := range allowedTransportTypes {
		if t == v {
			return true
		}
	}
	return false
}
