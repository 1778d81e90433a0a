// Package domain provides shared domain primitives.
package domain

import "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"

// AggregateRoot is a base type for aggregate roots that collect domain events.
// Embed this in aggregate structs to gain event collection capability.
//
// Example:
//
//	type Order struct {
//	    domain.AggregateRoot
//	    id    OrderID
//	    lines []Line
//	}
//
//	func (o *Order) Place() error {
//	    o.AddDomainEvent(NewOrderPlacedEvent(o))
//	    return nil
//	}
type AggregateRoot struct {
	domainEvents []events.Event
}

// AddDomainEvent adds an event to the aggregate's internal collection.
// Events are collected during business operations and dispatched later
// within the same transaction.
func (a *AggregateRoot) AddDomainEvent(event events.Event) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns all collected domain events.
// Use this after saving the aggregate to publish events.
func (a *AggregateRoot) DomainEvents() []events.Event {
	return a.domainEvents
}

// PopDomainEvents returns all collected events and clears the collection.
func (a *AggregateRoot) PopDomainEvents() []events.Event {
	evts := a.domainEvents
	a.domainEvents = nil
	return evts
}

// ClearDomainEvents removes all collected events.
// Call this after events have been successfully processed.
func (a *AggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
