package catalogmodule

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/logger"
)

// Service holds the catalog business logic. It is stateless beyond the
// storage handle and event bus, so it is safe for concurrent requests.
type Service struct {
	db  *gorm.DB
	bus events.EventBus
	log hclog.Logger
}

// NewService creates a catalog service
func NewService(db *gorm.DB, bus events.EventBus) *Service {
	return &Service{
		db:  db,
		bus: bus,
		log: logger.Named("catalog"),
	}
}

// publish sends an event when a bus is attached. Services built without
// one (tests) simply skip publishing.
func (s *Service) publish(eventType events.EventType, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAsync(events.New(eventType, ModuleID, data))
}
