package mq

import (
	"encoding/json"
	"time"

	zmq "github.com/pebbe/zmq4"
)

// RunMetric is the payload broadcast after each bulk recalculation run.
type RunMetric struct {
	RunID           string  `json:"run_id"`
	Skus            int     `json:"skus"`
	Wave1           int     `json:"wave_1"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       int64   `json:"timestamp"`
}

type MetricsPublisher struct {
	socket *zmq.Socket
}

// NewMetricsPublisher creates a ZMQ PUB socket for recalculation run metrics.
func NewMetricsPublisher(bindAddr string) (*MetricsPublisher, error) {
	sock, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := sock.Bind(bindAddr); err != nil {
		return nil, err
	}
	return &MetricsPublisher{socket: sock}, nil
}

// Publish serializes and emits one run metric. Subscribers are dashboards;
// nobody waits on delivery.
func (p *MetricsPublisher) Publish(runID string, skus, wave1 int, duration time.Duration) error {
	payload, err := json.Marshal(RunMetric{
		RunID:           runID,
		Skus:            skus,
		Wave1:           wave1,
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	_, err = p.socket.SendBytes(payload, 0)
	return err
}

// Close releases underlying publisher socket resources.
func (p *MetricsPublisher) Close() {
	p.socket.Close()
}
