// Package admin implements the back-office event console: the working copy of
// an event under edit, its validation rules, the payment-field policy, and the
// submission workflow against the events API. The console follows a
// single-goroutine, event-driven model: every operation runs in response to a
// discrete user action or a completed network call, so no locking is needed
// beyond the in-flight submission guard.
package admin

import (
	"fmt"
	"math"

	"github.com/noah-isme/techfest-api/internal/models"
)

// FieldErrors maps a form field key to a human-readable validation message.
// An absent key means the field is valid.
type FieldErrors map[string]string

// Valid reports whether no field is in error.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// Clear removes the recorded message for a field. This only hides the
// previously shown message; it performs no re-validation.
func (e FieldErrors) Clear(field string) { delete(e, field) }

// FormTeamSize mirrors the team size group with float members so that a
// failed numeric parse (NaN) survives until the submission transform.
type FormTeamSize struct {
	Min float64
	Max float64
}

// FormFees mirrors the registration fee group. NaN marks a failed parse.
type FormFees struct {
	Solo float64
	Team float64
}

// Paid reports whether either fee is above zero. NaN compares false, so a
// garbled fee never flips an event to paid.
func (f FormFees) Paid() bool { return f.Solo > 0 || f.Team > 0 }

// Form is the in-memory working copy of one event being created or edited.
// It is mutated in place by field handlers and either submitted or discarded.
type Form struct {
	Title            string
	Description      string
	Date             string
	Location         string
	EventType        models.EventType
	RegistrationFees FormFees
	Image            string
	QRCode           string
	UPIID            string
	IsTeamEvent      bool
	Capacity         float64
	TeamSize         FormTeamSize
	Prizes           models.Prizes
	Rules            []string
	Requirements     []string
	Coordinators     []models.Coordinator
	AboutContent     string
	DetailsContent   string
	StartTime        string
	EndTime          string
	IsActive         bool
}

// InitEmpty returns a default-valued working copy for the create flow.
func InitEmpty() *Form {
	return &Form{
		EventType:    models.EventTypeCompetition,
		Capacity:     models.DefaultCapacity,
		TeamSize:     FormTeamSize{Min: 1, Max: 1},
		Rules:        []string{},
		Requirements: []string{},
		Coordinators: []models.Coordinator{},
		IsActive:     true,
	}
}

// InitFromEvent returns a working copy cloned from an existing event for the
// edit flow, substituting defaults for any absent optional field.
func InitFromEvent(e models.Event) *Form {
	f := InitEmpty()
	f.Title = e.Title
	f.Description = e.Description
	f.Date = e.Date
	f.Location = e.Location
	if e.EventType != "" {
		f.EventType = e.EventType
	}
	f.RegistrationFees = FormFees{Solo: e.RegistrationFees.Solo, Team: e.RegistrationFees.Team}
	f.Image = e.Image
	f.QRCode = e.QRCode
	f.UPIID = e.UPIID
	f.IsTeamEvent = e.IsTeamEvent
	if e.Capacity > 0 {
		f.Capacity = float64(e.Capacity)
	}
	if e.TeamSize.Min > 0 {
		f.TeamSize.Min = float64(e.TeamSize.Min)
	}
	if e.TeamSize.Max > 0 {
		f.TeamSize.Max = float64(e.TeamSize.Max)
	}
	f.Prizes = e.Prizes
	if len(e.Rules) > 0 {
		f.Rules = append([]string{}, e.Rules...)
	}
	if len(e.Requirements) > 0 {
		f.Requirements = append([]string{}, e.Requirements...)
	}
	if len(e.Coordinators) > 0 {
		f.Coordinators = append([]models.Coordinator{}, e.Coordinators...)
	}
	f.AboutContent = e.AboutContent
	f.DetailsContent = e.DetailsContent
	f.StartTime = e.StartTime
	f.EndTime = e.EndTime
	f.IsActive = true
	return f
}

// SetField updates a scalar or nested field addressed by its dotted path.
// It is a pure mutation: callers that want the error-clearing UX call
// FieldErrors.Clear separately after a successful set.
func (f *Form) SetField(path string, value interface{}) error {
	switch path {
	case "title":
		return setString(&f.Title, path, value)
	case "description":
		return setString(&f.Description, path, value)
	case "date":
		return setString(&f.Date, path, value)
	case "location":
		return setString(&f.Location, path, value)
	case "eventType":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string, got %T", path, value)
		}
		f.EventType = models.EventType(s)
		return nil
	case "image":
		return setString(&f.Image, path, value)
	case "qrCode":
		return setString(&f.QRCode, path, value)
	case "upiId":
		return setString(&f.UPIID, path, value)
	case "aboutContent":
		return setString(&f.AboutContent, path, value)
	case "detailsContent":
		return setString(&f.DetailsContent, path, value)
	case "startTime":
		return setString(&f.StartTime, path, value)
	case "endTime":
		return setString(&f.EndTime, path, value)
	case "isTeamEvent":
		return setBool(&f.IsTeamEvent, path, value)
	case "capacity":
		return setNumber(&f.Capacity, path, value)
	case "registrationFees.solo":
		return setNumber(&f.RegistrationFees.Solo, path, value)
	case "registrationFees.team":
		return setNumber(&f.RegistrationFees.Team, path, value)
	case "teamSize.max":
		return setNumber(&f.TeamSize.Max, path, value)
	case "prizes.first":
		return setString(&f.Prizes.First, path, value)
	case "prizes.second":
		return setString(&f.Prizes.Second, path, value)
	case "prizes.third":
		return setString(&f.Prizes.Third, path, value)
	case "prizes.other":
		return setString(&f.Prizes.Other, path, value)
	default:
		return fmt.Errorf("unknown form field %q", path)
	}
}

func setString(dest *string, path string, value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %s expects a string, got %T", path, value)
	}
	*dest = s
	return nil
}

func setBool(dest *bool, path string, value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("field %s expects a bool, got %T", path, value)
	}
	*dest = b
	return nil
}

func setNumber(dest *float64, path string, value interface{}) error {
	switch n := value.(type) {
	case float64:
		*dest = n
	case int:
		*dest = float64(n)
	default:
		return fmt.Errorf("field %s expects a number, got %T", path, value)
	}
	return nil
}

// Rule and coordinator lists are index-addressable ordered sequences. Removal
// splices the entry out and re-indexes everything after it.

// AddRule appends an empty rule slot.
func (f *Form) AddRule() { f.Rules = append(f.Rules, "") }

// UpdateRule replaces the rule at the given index.
func (f *Form) UpdateRule(index int, value string) error {
	if index < 0 || index >= len(f.Rules) {
		return fmt.Errorf("rule index %d out of range", index)
	}
	f.Rules[index] = value
	return nil
}

// RemoveRule splices out the rule at the given index.
func (f *Form) RemoveRule(index int) error {
	if index < 0 || index >= len(f.Rules) {
		return fmt.Errorf("rule index %d out of range", index)
	}
	f.Rules = append(f.Rules[:index], f.Rules[index+1:]...)
	return nil
}

// AddRequirement appends an empty requirement slot.
func (f *Form) AddRequirement() { f.Requirements = append(f.Requirements, "") }

// UpdateRequirement replaces the requirement at the given index.
func (f *Form) UpdateRequirement(index int, value string) error {
	if index < 0 || index >= len(f.Requirements) {
		return fmt.Errorf("requirement index %d out of range", index)
	}
	f.Requirements[index] = value
	return nil
}

// RemoveRequirement splices out the requirement at the given index.
func (f *Form) RemoveRequirement(index int) error {
	if index < 0 || index >= len(f.Requirements) {
		return fmt.Errorf("requirement index %d out of range", index)
	}
	f.Requirements = append(f.Requirements[:index], f.Requirements[index+1:]...)
	return nil
}

// AddCoordinator appends an empty coordinator slot.
func (f *Form) AddCoordinator() {
	f.Coordinators = append(f.Coordinators, models.Coordinator{})
}

// UpdateCoordinator sets one field (name, contact or email) of the coordinator
// at the given index.
func (f *Form) UpdateCoordinator(index int, field, value string) error {
	if index < 0 || index >= len(f.Coordinators) {
		return fmt.Errorf("coordinator index %d out of range", index)
	}
	switch field {
	case "name":
		f.Coordinators[index].Name = value
	case "contact":
		f.Coordinators[index].Contact = value
	case "email":
		f.Coordinators[index].Email = value
	default:
		return fmt.Errorf("unknown coordinator field %q", field)
	}
	return nil
}

// RemoveCoordinator splices out the coordinator at the given index.
func (f *Form) RemoveCoordinator(index int) error {
	if index < 0 || index >= len(f.Coordinators) {
		return fmt.Errorf("coordinator index %d out of range", index)
	}
	f.Coordinators = append(f.Coordinators[:index], f.Coordinators[index+1:]...)
	return nil
}

// ToInput transforms the working copy into the wire payload. NaN numerics are
// coerced (fees to 0, capacity to the default), teamSize.min is pinned to 1,
// teamSize.max collapses to 1 for non-team events, and isActive is forced true.
func (f *Form) ToInput() models.EventInput {
	solo := f.RegistrationFees.Solo
	if math.IsNaN(solo) {
		solo = 0
	}
	team := f.RegistrationFees.Team
	if math.IsNaN(team) {
		team = 0
	}
	capacity := f.Capacity
	if math.IsNaN(capacity) {
		capacity = models.DefaultCapacity
	}
	maxTeam := 1.0
	if f.IsTeamEvent {
		maxTeam = f.TeamSize.Max
		if math.IsNaN(maxTeam) {
			maxTeam = 1
		}
	}

	return models.EventInput{
		Title:            f.Title,
		Description:      f.Description,
		Date:             f.Date,
		Location:         f.Location,
		EventType:        f.EventType,
		RegistrationFees: models.RegistrationFees{Solo: solo, Team: team},
		Image:            f.Image,
		QRCode:           f.QRCode,
		UPIID:            f.UPIID,
		IsTeamEvent:      f.IsTeamEvent,
		TeamSize:         models.TeamSize{Min: 1, Max: int(maxTeam)},
		Capacity:         int(capacity),
		Prizes:           f.Prizes,
		Rules:            models.StringList(f.Rules),
		Requirements:     models.StringList(f.Requirements),
		AboutContent:     f.AboutContent,
		DetailsContent:   f.DetailsContent,
		Coordinators:     models.CoordinatorList(f.Coordinators),
		StartTime:        f.StartTime,
		EndTime:          f.EndTime,
		IsActive:         true,
	}
}
