package admin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/models"
)

func TestSetFieldPaths(t *testing.T) {
	f := InitEmpty()

	require.NoError(t, f.SetField("title", "Hackathon"))
	require.NoError(t, f.SetField("registrationFees.solo", 150.0))
	require.NoError(t, f.SetField("isTeamEvent", true))
	require.NoError(t, f.SetField("teamSize.max", 5.0))
	require.NoError(t, f.SetField("prizes.first", "10000 INR"))

	assert.Equal(t, "Hackathon", f.Title)
	assert.Equal(t, 150.0, f.RegistrationFees.Solo)
	assert.True(t, f.IsTeamEvent)
	assert.Equal(t, 5.0, f.TeamSize.Max)
	assert.Equal(t, "10000 INR", f.Prizes.First)
}

func TestSetFieldRejectsUnknownPathAndWrongType(t *testing.T) {
	f := InitEmpty()

	assert.Error(t, f.SetField("titel", "typo"))
	assert.Error(t, f.SetField("title", 42))
	assert.Error(t, f.SetField("capacity", "fifty"))
	assert.Error(t, f.SetField("isTeamEvent", "yes"))
}

func TestListOperationsSpliceAndReindex(t *testing.T) {
	f := InitEmpty()
	f.AddRule()
	f.AddRule()
	f.AddRule()
	require.NoError(t, f.UpdateRule(0, "first"))
	require.NoError(t, f.UpdateRule(1, "second"))
	require.NoError(t, f.UpdateRule(2, "third"))

	require.NoError(t, f.RemoveRule(1))
	assert.Equal(t, []string{"first", "third"}, f.Rules)

	assert.Error(t, f.UpdateRule(2, "gone"))
	assert.Error(t, f.RemoveRule(-1))
}

func TestCoordinatorOperations(t *testing.T) {
	f := InitEmpty()
	f.AddCoordinator()
	require.NoError(t, f.UpdateCoordinator(0, "name", "Asha"))
	require.NoError(t, f.UpdateCoordinator(0, "contact", "9876543210"))
	require.NoError(t, f.UpdateCoordinator(0, "email", "asha@example.org"))

	assert.Equal(t, models.Coordinator{Name: "Asha", Contact: "9876543210", Email: "asha@example.org"}, f.Coordinators[0])
	assert.Error(t, f.UpdateCoordinator(0, "phone", "x"))
	require.NoError(t, f.RemoveCoordinator(0))
	assert.Empty(t, f.Coordinators)
}

func TestToInputCoercions(t *testing.T) {
	f := validForm()
	f.RegistrationFees = FormFees{Solo: math.NaN(), Team: math.NaN()}
	f.Capacity = math.NaN()
	f.IsTeamEvent = false
	f.TeamSize.Max = 7
	f.IsActive = false

	input := f.ToInput()
	assert.Zero(t, input.RegistrationFees.Solo)
	assert.Zero(t, input.RegistrationFees.Team)
	assert.Equal(t, models.DefaultCapacity, input.Capacity)
	assert.Equal(t, models.TeamSize{Min: 1, Max: 1}, input.TeamSize, "solo events collapse to a team of one")
	assert.True(t, input.IsActive, "submission always activates the event")
}

func TestToInputKeepsTeamSizeForTeamEvents(t *testing.T) {
	f := validForm()
	f.IsTeamEvent = true
	f.TeamSize = FormTeamSize{Min: 3, Max: 6}

	input := f.ToInput()
	assert.Equal(t, models.TeamSize{Min: 1, Max: 6}, input.TeamSize, "min is pinned to 1 regardless of the form")
}

func TestInitFromEventClonesWithoutAliasing(t *testing.T) {
	event := models.Event{
		ID:          "ev-1",
		Title:       "Code Golf",
		Description: "Shortest program wins across three rounds of puzzles.",
		Date:        "2026-04-02",
		Location:    "Lab 3",
		EventType:   models.EventTypeTechnical,
		Capacity:    80,
		TeamSize:    models.TeamSize{Min: 1, Max: 1},
		Rules:       models.StringList{"no stdlib"},
		IsActive:    false,
	}

	f := InitFromEvent(event)
	assert.Equal(t, event.Title, f.Title)
	assert.Equal(t, 80.0, f.Capacity)
	assert.True(t, f.IsActive, "edits re-activate on submit")

	require.NoError(t, f.UpdateRule(0, "changed"))
	assert.Equal(t, models.StringList{"no stdlib"}, event.Rules, "editing the copy must not touch the source event")
}

func TestInitFromEventDefaultsAbsentOptionals(t *testing.T) {
	f := InitFromEvent(models.Event{Title: "Bare"})
	assert.Equal(t, models.EventTypeCompetition, f.EventType)
	assert.Equal(t, float64(models.DefaultCapacity), f.Capacity)
	assert.Equal(t, FormTeamSize{Min: 1, Max: 1}, f.TeamSize)
	assert.NotNil(t, f.Rules)
	assert.NotNil(t, f.Coordinators)
}
