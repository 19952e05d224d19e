package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EventType categorises catalogue entries.
type EventType string

const (
	EventTypeCompetition  EventType = "competition"
	EventTypeTechnical    EventType = "technical"
	EventTypeNonTechnical EventType = "nontechnical"
)

// DateLayout is the wall-clock wire format for event dates. Times of day are
// carried separately and no timezone handling is applied anywhere.
const DateLayout = "2006-01-02"

// DefaultCapacity is applied when an event arrives without a capacity.
const DefaultCapacity = 50

// RegistrationFees holds the solo and team entry prices. An event is "paid"
// when either fee is greater than zero.
type RegistrationFees struct {
	Solo float64 `json:"solo"`
	Team float64 `json:"team"`
}

// Paid reports whether either fee is above zero.
func (f RegistrationFees) Paid() bool {
	return f.Solo > 0 || f.Team > 0
}

// TeamSize bounds the member count for team events. Min is pinned to 1 by the
// submission transform and is not independently editable.
type TeamSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Prizes lists award descriptions per placement.
type Prizes struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
	Other  string `json:"other"`
}

// Coordinator is a contact person attached to an event.
type Coordinator struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email,omitempty"`
}

// StringList is an ordered list of free-text strings stored as JSONB.
type StringList []string

// CoordinatorList is an ordered list of coordinators stored as JSONB.
type CoordinatorList []Coordinator

// Event is the persisted catalogue entity.
type Event struct {
	ID               string           `db:"id" json:"id"`
	Title            string           `db:"title" json:"title"`
	Description      string           `db:"description" json:"description"`
	Date             string           `db:"date" json:"date"`
	Location         string           `db:"location" json:"location"`
	EventType        EventType        `db:"event_type" json:"eventType"`
	RegistrationFees RegistrationFees `db:"registration_fees" json:"registrationFees"`
	Image            string           `db:"image" json:"image"`
	QRCode           string           `db:"qr_code" json:"qrCode,omitempty"`
	UPIID            string           `db:"upi_id" json:"upiId,omitempty"`
	IsTeamEvent      bool             `db:"is_team_event" json:"isTeamEvent"`
	TeamSize         TeamSize         `db:"team_size" json:"teamSize"`
	Capacity         int              `db:"capacity" json:"capacity"`
	Prizes           Prizes           `db:"prizes" json:"prizes"`
	Rules            StringList       `db:"rules" json:"rules"`
	Requirements     StringList       `db:"requirements" json:"requirements"`
	AboutContent     string           `db:"about_content" json:"aboutContent,omitempty"`
	DetailsContent   string           `db:"details_content" json:"detailsContent,omitempty"`
	Coordinators     CoordinatorList  `db:"coordinators" json:"coordinators"`
	StartTime        string           `db:"start_time" json:"startTime,omitempty"`
	EndTime          string           `db:"end_time" json:"endTime,omitempty"`
	IsActive         bool             `db:"is_active" json:"isActive"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

// ApplyDefaults fills absent optional fields with their canonical defaults.
// Consumers call this on receipt so downstream code never sees zero groups.
func (e *Event) ApplyDefaults() {
	if e.EventType == "" {
		e.EventType = EventTypeCompetition
	}
	if e.Capacity <= 0 {
		e.Capacity = DefaultCapacity
	}
	if e.TeamSize.Min <= 0 {
		e.TeamSize.Min = 1
	}
	if e.TeamSize.Max <= 0 {
		e.TeamSize.Max = 1
	}
	if e.Rules == nil {
		e.Rules = StringList{}
	}
	if e.Requirements == nil {
		e.Requirements = StringList{}
	}
	if e.Coordinators == nil {
		e.Coordinators = CoordinatorList{}
	}
}

// EventInput is the wire payload accepted for create and update calls.
type EventInput struct {
	Title            string           `json:"title" validate:"required"`
	Description      string           `json:"description" validate:"required,min=20"`
	Date             string           `json:"date" validate:"required"`
	Location         string           `json:"location" validate:"required"`
	EventType        EventType        `json:"eventType" validate:"required,oneof=competition technical nontechnical"`
	RegistrationFees RegistrationFees `json:"registrationFees"`
	Image            string           `json:"image" validate:"required,url"`
	QRCode           string           `json:"qrCode"`
	UPIID            string           `json:"upiId"`
	IsTeamEvent      bool             `json:"isTeamEvent"`
	TeamSize         TeamSize         `json:"teamSize"`
	Capacity         int              `json:"capacity" validate:"min=1"`
	Prizes           Prizes           `json:"prizes"`
	Rules            StringList       `json:"rules"`
	Requirements     StringList       `json:"requirements"`
	AboutContent     string           `json:"aboutContent"`
	DetailsContent   string           `json:"detailsContent"`
	Coordinators     CoordinatorList  `json:"coordinators"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	IsActive         bool             `json:"isActive"`
}

// EventFilter captures the local search criteria for the catalogue.
type EventFilter struct {
	Search string
}

func jsonValue(v interface{}) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb column: %w", err)
	}
	return raw, nil
}

func jsonScan(src, dest interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// Value implements driver.Valuer.
func (f RegistrationFees) Value() (driver.Value, error) { return jsonValue(f) }

// Scan implements sql.Scanner.
func (f *RegistrationFees) Scan(src interface{}) error { return jsonScan(src, f) }

// Value implements driver.Valuer.
func (t TeamSize) Value() (driver.Value, error) { return jsonValue(t) }

// Scan implements sql.Scanner.
func (t *TeamSize) Scan(src interface{}) error { return jsonScan(src, t) }

// Value implements driver.Valuer.
func (p Prizes) Value() (driver.Value, error) { return jsonValue(p) }

// Scan implements sql.Scanner.
func (p *Prizes) Scan(src interface{}) error { return jsonScan(src, p) }

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonValue(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error { return jsonScan(src, l) }

// Value implements driver.Valuer.
func (l CoordinatorList) Value() (driver.Value, error) {
	if l == nil {
		l = CoordinatorList{}
	}
	return jsonValue(l)
}

// Scan implements sql.Scanner.
func (l *CoordinatorList) Scan(src interface{}) error { return jsonScan(src, l) }
