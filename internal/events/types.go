// Package events provides the in-process event bus used for catalog and
// watchlist change notifications.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

// System-wide event types
const (
	// Catalog events
	EventMovieCreated  EventType = "movie.created"
	EventMovieUpdated  EventType = "movie.updated"
	EventMovieDeleted  EventType = "movie.deleted"
	EventSeriesCreated EventType = "series.created"
	EventSeriesUpdated EventType = "series.updated"
	EventSeriesDeleted EventType = "series.deleted"
	EventSeasonAdded   EventType = "season.added"

	// Watchlist events
	EventWatchlistMovieAdded  EventType = "watchlist.movie.added"
	EventWatchlistSeriesAdded EventType = "watchlist.series.added"
	EventProgressUpdated      EventType = "progress.updated"

	// User events
	EventUserCreated EventType = "user.created"

	// System events
	EventSystemStarted EventType = "system.started"
	EventSystemStopped EventType = "system.stopped"
)

// Event is a single occurrence flowing through the bus.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New builds an event with a generated ID and current timestamp.
func New(eventType EventType, source string, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Handler processes a delivered event.
type Handler func(Event)

// Stats carries bus counters for the stats endpoint.
type Stats struct {
	Published   uint64               `json:"published"`
	Delivered   uint64               `json:"delivered"`
	Dropped     uint64               `json:"dropped"`
	ByType      map[EventType]uint64 `json:"by_type"`
	Subscribers int                  `json:"subscribers"`
	Running     bool                 `json:"running"`
}
