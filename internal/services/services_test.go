package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KingCuz/GrindLink/internal/store"
)

// fakeStore records puts and serves a canned document list.
type fakeStore struct {
	putCalls    int
	collections []string
	nextID      string
	docs        []store.Document
	putErr      error
	listErr     error
}

func (f *fakeStore) Put(ctx context.Context, collection string, createdAt time.Time, body json.RawMessage) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.putCalls++
	f.collections = append(f.collections, collection)
	f.docs = append([]store.Document{{ID: f.nextID, CreatedAt: createdAt, Body: body}}, f.docs...)
	return f.nextID, nil
}

func (f *fakeStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

// recordingPublisher captures every published event.
type recordingPublisher struct {
	events   []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.events = append(p.events, event)
	p.payloads = append(p.payloads, data)
}
