package ports

import "time"

// AlertJob is one unit of heat-wave alert fan-out: notify one user about one
// heat wave. Jobs for the same user must be processed in order.
type AlertJob struct {
	HeatWaveID string
	ZoneID     string
	UserID     string
	Label      string
	IssuedAt   time.Time
}

// AlertDispatcher enqueues alert jobs for asynchronous processing.
type AlertDispatcher interface {
	Enqueue(job AlertJob)
	EnqueueBatch(jobs []AlertJob)
}
