package models

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

// Priorities lists every priority from most to least urgent.
// Listing order is derived from this slice, so its order is significant.
var Priorities = []Priority{PriorityHigh, PriorityNormal, PriorityLow}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p.Rank() >= 0
}

// Rank returns the position of p in Priorities, or -1 when p is unknown.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if p == v {
			return i
		}
	}
	return -1
}

// NotifyVia is the channel a party would be notified on. Nothing is sent.
type NotifyVia string

const (
	NotifySMS      NotifyVia = "SMS"
	NotifyWhatsApp NotifyVia = "WA"
	NotifyEmail    NotifyVia = "EMAIL"
)

// NotifyChannels is the set of allowed notification channels.
var NotifyChannels = []NotifyVia{NotifySMS, NotifyWhatsApp, NotifyEmail}

// IsValid reports whether n is a known channel.
func (n NotifyVia) IsValid() bool {
	for _, v := range NotifyChannels {
		if n == v {
			return true
		}
	}
	return false
}

// PartyStatus marks a party as active or inactive.
type PartyStatus string

const (
	PartyActive   PartyStatus = "active"
	PartyInactive PartyStatus = "inactive"
)

// IsValid reports whether s is a known status.
func (s PartyStatus) IsValid() bool {
	return s == PartyActive || s == PartyInactive
}

// Seeded party types. Type is an open string, these are only the common values.
const (
	PartyTypeClient  = "client"
	PartyTypeVendor  = "vendor"
	PartyTypePartner = "partner"
)
