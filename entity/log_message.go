// Package entity defines data models for the paygate client.
package entity

import "time"

// LogMessage is a log entry persisted by the call-log sink.
type LogMessage struct {
	Time      time.Time `json:"time" bson:"time"`
	Level     string    `json:"level" bson:"level"`
	Category  string    `json:"category" bson:"category"`
	Text      string    `json:"text" bson:"text"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	RequestId string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
}

func (m *LogMessage) DataType() string {
	return "log"
}

// CallRecord summarizes one gateway call for the call log. Request fields are
// never stored, only the operation and its result.
type CallRecord struct {
	Time      time.Time     `json:"time" bson:"time"`
	RequestId string        `json:"request_id" bson:"request_id"`
	Provider  string        `json:"provider" bson:"provider"`
	Mode      string        `json:"mode" bson:"mode"`
	Operation string        `json:"operation" bson:"operation"`
	Endpoint  string        `json:"endpoint" bson:"endpoint"`
	State     string        `json:"state" bson:"state"`
	Ack       string        `json:"ack,omitempty" bson:"ack,omitempty"`
	Error     string        `json:"error,omitempty" bson:"error,omitempty"`
	Duration  time.Duration `json:"duration" bson:"duration"`
}

func (r *CallRecord) DataType() string {
	return "call"
}
