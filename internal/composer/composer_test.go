package composer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rheannec/planora/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func typePtr(t models.EventType) *models.EventType { return &t }

func timePtr(t time.Time) *time.Time { return &t }

func boolPtr(b bool) *bool { return &b }

func TestMerge_OverwritesOnlyProvidedFields(t *testing.T) {
	base := EventPatch{
		Title: strPtr("Anniv de Paul"),
		Emoji: strPtr("🎂"),
	}
	patch := EventPatch{
		Color: strPtr("#E8FFE8"),
	}

	merged := Merge(base, patch)

	require.NotNil(t, merged.Title)
	assert.Equal(t, "Anniv de Paul", *merged.Title)
	require.NotNil(t, merged.Emoji)
	assert.Equal(t, "🎂", *merged.Emoji)
	require.NotNil(t, merged.Color)
	assert.Equal(t, "#E8FFE8", *merged.Color)
}

func TestMerge_LaterPatchWins(t *testing.T) {
	base := EventPatch{Title: strPtr("Old title")}
	patch := EventPatch{Title: strPtr("New title")}

	merged := Merge(base, patch)

	require.NotNil(t, merged.Title)
	assert.Equal(t, "New title", *merged.Title)
}

func TestMerge_IndividualTruncatesHostsToFirst(t *testing.T) {
	first := uuid.New()
	base := EventPatch{Type: typePtr(models.EventTypeIndividual)}
	patch := EventPatch{Hosts: []uuid.UUID{first, uuid.New(), uuid.New()}}

	merged := Merge(base, patch)

	require.Len(t, merged.Hosts, 1)
	assert.Equal(t, first, merged.Hosts[0])
}

func TestMerge_TypeChangeTruncatesExistingHosts(t *testing.T) {
	first := uuid.New()
	base := EventPatch{Hosts: []uuid.UUID{first, uuid.New()}}
	patch := EventPatch{Type: typePtr(models.EventTypeIndividual)}

	merged := Merge(base, patch)

	require.Len(t, merged.Hosts, 1)
	assert.Equal(t, first, merged.Hosts[0])
}

func TestMerge_CollectiveKeepsAllHosts(t *testing.T) {
	base := EventPatch{Type: typePtr(models.EventTypeCollective)}
	patch := EventPatch{Hosts: []uuid.UUID{uuid.New(), uuid.New()}}

	merged := Merge(base, patch)

	assert.Len(t, merged.Hosts, 2)
}

func TestFinalize_TitleRequired(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)

	_, err := Finalize(EventPatch{StartDate: timePtr(start)})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = Finalize(EventPatch{Title: strPtr("ab"), StartDate: timePtr(start)})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = Finalize(EventPatch{Title: strPtr("   "), StartDate: timePtr(start)})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestFinalize_StartDateRequired(t *testing.T) {
	_, err := Finalize(EventPatch{Title: strPtr("Crémaillère")})
	assert.ErrorIs(t, err, ErrStartDateRequired)
}

func TestFinalize_EndDateBeforeStartRejected(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := Finalize(EventPatch{
		Title:     strPtr("Crémaillère"),
		StartDate: timePtr(start),
		EndDate:   timePtr(end),
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestFinalize_DefaultsToCollective(t *testing.T) {
	event, err := Finalize(EventPatch{
		Title:     strPtr("Crémaillère"),
		StartDate: timePtr(time.Now()),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeCollective, event.Type)
}

func TestFinalize_BuildsParticipantsAndGifts(t *testing.T) {
	host := uuid.New()
	guest := uuid.New()
	target := 15000

	event, err := Finalize(EventPatch{
		Type:      typePtr(models.EventTypeCollective),
		Title:     strPtr("Crémaillère"),
		StartDate: timePtr(time.Now()),
		Hosts:     []uuid.UUID{host},
		Participants: []ParticipantPatch{
			{UserID: guest},
			{UserID: host, Role: models.ParticipantRoleHost},
		},
		Gifts: []GiftPatch{
			{Title: "Machine à café", Price: 15000, Collaborative: true, TargetAmount: &target},
		},
	})
	require.NoError(t, err)

	require.Len(t, event.Participants, 2)
	assert.Equal(t, host, event.Participants[0].UserID)
	assert.Equal(t, models.ParticipantRoleHost, event.Participants[0].Role)
	assert.Equal(t, models.ParticipantStatusConfirmed, event.Participants[0].Status)
	assert.Equal(t, guest, event.Participants[1].UserID)
	assert.Equal(t, models.ParticipantRoleGuest, event.Participants[1].Role)
	assert.Equal(t, models.ParticipantStatusInvited, event.Participants[1].Status)

	require.Len(t, event.Gifts, 1)
	assert.Equal(t, models.GiftStatusAvailable, event.Gifts[0].Status)
	assert.True(t, event.Gifts[0].Collaborative)
}

func TestFinalize_IndividualKeepsSingleHost(t *testing.T) {
	first := uuid.New()

	event, err := Finalize(EventPatch{
		Type:      typePtr(models.EventTypeIndividual),
		Title:     strPtr("Anniv de Paul"),
		StartDate: timePtr(time.Now()),
		Hosts:     []uuid.UUID{first, uuid.New()},
	})
	require.NoError(t, err)

	hosts := 0
	for _, p := range event.Participants {
		if p.Role == models.ParticipantRoleHost {
			hosts++
			assert.Equal(t, first, p.UserID)
		}
	}
	assert.Equal(t, 1, hosts)
}

// Walks the whole wizard the way the step screens do: template seed, then
// one patch per step, merged in order.
func TestMerge_WizardScenario(t *testing.T) {
	hostA := uuid.New()
	hostB := uuid.New()
	templateID := uuid.New()

	accumulated := Merge(EventPatch{}, EventPatch{
		Type:       typePtr(models.EventTypeIndividual),
		TemplateID: &templateID,
		Emoji:      strPtr("🎂"),
	})
	accumulated = Merge(accumulated, EventPatch{Title: strPtr("Anniv de Paul")})
	accumulated = Merge(accumulated, EventPatch{Hosts: []uuid.UUID{hostA, hostB}})
	accumulated = Merge(accumulated, EventPatch{
		StartDate: timePtr(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)),
		AllDay:    boolPtr(false),
	})
	accumulated = Merge(accumulated, EventPatch{
		Location: &models.Location{Address: "12 rue X"},
	})
	accumulated = Merge(accumulated, EventPatch{
		Emoji: strPtr("🎉"),
		Color: strPtr("#E8FFE8"),
	})

	event, err := Finalize(accumulated)
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeIndividual, event.Type)
	assert.Equal(t, "Anniv de Paul", event.Title)
	assert.Equal(t, "🎉", event.Emoji)
	assert.Equal(t, "#E8FFE8", event.Color)
	assert.Equal(t, "12 rue X", event.Location.Address)
	assert.Equal(t, time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC), event.StartDate)
	require.NotNil(t, event.TemplateID)
	assert.Equal(t, templateID, *event.TemplateID)

	require.Len(t, event.Participants, 1)
	assert.Equal(t, hostA, event.Participants[0].UserID)
	assert.Equal(t, models.ParticipantRoleHost, event.Participants[0].Role)
}
