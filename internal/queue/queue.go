package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Publisher is the half of the queue the campaign dispatcher needs.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Subscriber registers a handler for a topic.
type Subscriber interface {
	Subscribe(topic string, handler func(payload any) error) error
}

// Queue combines both halves.
type Queue interface {
	Publisher
	Subscriber
}

// InMemoryQueue runs handlers in-process with bounded retry. It backs dev
// mode; with AMQP configured, delivery jobs go to RabbitMQ and cmd/worker
// consumes them instead.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// jobEnvelope wraps a payload with retry bookkeeping.
type jobEnvelope struct {
	payload    any
	retryCount int
	maxRetries int
}

// Publish hands the payload to every subscriber. Handlers run on their own
// goroutines, so Publish never blocks on processing.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobEnvelope{payload: payload, maxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(handler, job)
	}
	return nil
}

// processJob retries a failing handler with linear backoff, then drops the
// job.
func (q *InMemoryQueue) processJob(handler func(payload any) error, job jobEnvelope) {
	for {
		err := handler(job.payload)
		if err == nil {
			return
		}

		job.retryCount++
		if job.retryCount > job.maxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.maxRetries, job.payload)
			return
		}
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.retryCount, job.maxRetries, job.payload, err)

		time.Sleep(time.Duration(job.retryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
