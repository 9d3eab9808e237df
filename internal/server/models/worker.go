package models

import "time"

// Worker is a warehouse worker account. WorkerCode is the unique,
// immutable login identifier and token subject.
type Worker struct {
	WorkerCode   string
	PasswordHash string
	CreatedAt    time.Time
}
