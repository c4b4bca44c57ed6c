package event

import (
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/service"
)

var _ service.EventDispatcher = &LogDispatcher{}

// LogDispatcher records domain events in the service log.
type LogDispatcher struct {
	logger log.FieldLogger
}

func NewLogDispatcher(logger log.FieldLogger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(event service.Event) error {
	d.logger.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
