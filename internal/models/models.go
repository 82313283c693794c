package models

import "time"

// Party is a contact record (client, vendor or partner) that tasks are assigned to.
type Party struct {
	ID         int64       `json:"id"`
	FirstName  string      `json:"firstName"`
	SecondName string      `json:"secondName"`
	Mobile1    string      `json:"mobile1"`
	Mobile2    *string     `json:"mobile2"`
	Email      string      `json:"email"`
	Address    string      `json:"address"`
	Status     PartyStatus `json:"status"`
	Type       string      `json:"type"`
}

// Task is a unit of work owned by a single party.
type Task struct {
	ID             int64     `json:"id"`
	JobDescription string    `json:"jobDescription"`
	Priority       Priority  `json:"priority"`
	NotifyVia      NotifyVia `json:"notifyVia"`
	PartyID        int64     `json:"partyId"`
	CreatedAt      time.Time `json:"createdAt"`

	// Party is populated by listings that join the owning party.
	Party *Party `json:"party,omitempty"`
}

// Visit is the singleton visit counter row.
type Visit struct {
	ID    int64 `json:"id"`
	Count int64 `json:"count"`
}

// VisitID is the only id the counter row may take.
const VisitID = 1
