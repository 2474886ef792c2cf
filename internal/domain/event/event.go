package event

import "time"

type Kind string

const (
	KindCatalogLoaded    Kind = "catalog.loaded"
	KindCatalogRefreshed Kind = "catalog.refreshed"
	KindCatalogSaved     Kind = "catalog.saved"
	KindCatalogError     Kind = "catalog.error"
	KindCatalogExported  Kind = "catalog.exported"
	KindDataCleared      Kind = "data.cleared"
	KindCartChanged      Kind = "cart.changed"
	KindOrderComposed    Kind = "order.composed"
	KindSession          Kind = "admin.session"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Event struct {
	Kind    Kind
	Level   Level
	Message string
	At      time.Time
}

type Publisher interface {
	Publish(e Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
