package services

import "context"

// Database persists log entries and call records.
type Database interface {
	WriteLogMessage(ctx context.Context, data Data) error
}

type Data interface {
	DataType() string
}
