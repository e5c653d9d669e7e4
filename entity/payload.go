package entity

import (
	"net/url"
	"strings"
)

// Options are caller supplied request fields, applied over computed defaults.
type Options map[string]string

// Payload is an insertion-ordered set of request fields. Setting an existing
// key replaces its value and keeps its position.
type Payload struct {
	keys   []string
	values map[string]string
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]string)}
}

// PayloadFromOptions copies options into a new payload with keys sorted, so
// the encoded body is deterministic.
func PayloadFromOptions(options Options) *Payload {
	p := NewPayload()
	p.Merge(options)
	return p
}

// ParsePayload decodes a form-encoded body keeping the original field order.
// Notification bodies have to be echoed back in the order they were received.
func ParsePayload(raw string) (*Payload, error) {
	p := NewPayload()
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		p.Set(k, v)
	}
	return p, nil
}

func (p *Payload) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Payload) Get(key string) (string, bool) {
	value, ok := p.values[key]
	return value, ok
}

func (p *Payload) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *Payload) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Merge sets every option on the payload. New keys are appended in sorted
// order.
func (p *Payload) Merge(options Options) {
	for _, key := range options.sortedKeys() {
		p.Set(key, options[key])
	}
}

// Prepend inserts key at the head of the payload unless it is already present.
func (p *Payload) Prepend(key, value string) {
	if p.Has(key) {
		return
	}
	p.keys = append([]string{key}, p.keys...)
	p.values[key] = value
}

func (p *Payload) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

func (p *Payload) Len() int {
	return len(p.keys)
}

// Map returns a copy of the payload fields.
func (p *Payload) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Clone returns an independent copy of the payload.
func (p *Payload) Clone() *Payload {
	c := NewPayload()
	for _, key := range p.keys {
		c.Set(key, p.values[key])
	}
	return c
}

// Encode renders the payload as a form-encoded body in insertion order.
func (p *Payload) Encode() string {
	var sb strings.Builder
	for i, key := range p.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.values[key]))
	}
	return sb.String()
}
