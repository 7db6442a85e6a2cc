package usecases

import (
	"fmt"
	"testing"
	"time"

	"vita-server/entities"
	"vita-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	levelUps []int
}

func (n *recordingNotifier) NotifyLevelUp(username string, level int) {
	n.levelUps = append(n.levelUps, level)
}

func newSyncUseCase(t *testing.T) (*SyncUseCase, *recordingNotifier) {
	t.Helper()
	database := newTestDB(t)
	notifier := &recordingNotifier{}
	uc := NewSyncUseCase(
		repositories.NewProfilePgRepository(database),
		repositories.NewHistoryPgRepository(database),
		repositories.NewGoalPgRepository(database),
		repositories.NewGroupPgRepository(database),
		nil,
		notifier,
	)
	return uc, notifier
}

func TestFetchAllEmptyAccount(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	all, err := uc.FetchAll("fresh")
	require.NoError(t, err)
	assert.Nil(t, all.Profile)
	// every category is present, even when empty
	assert.Len(t, all.History, len(entities.Categories))
	for _, cat := range entities.Categories {
		assert.NotNil(t, all.History[cat])
	}

	_, err = uc.FetchAll("")
	assert.Error(t, err)
}

func TestFetchAllGroupsEntriesByCategory(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	require.NoError(t, uc.SaveHistory(&entities.HistoryEntry{
		Username: "alice", Category: "food", Timestamp: "2026-03-14T09:00:00Z", Payload: `{"kcal":500}`,
	}))
	require.NoError(t, uc.SaveHistory(&entities.HistoryEntry{
		Username: "alice", Category: "water", Timestamp: "2026-03-14T10:00:00Z", Payload: `{"ml":250}`,
	}))

	all, err := uc.FetchAll("alice")
	require.NoError(t, err)
	assert.Len(t, all.History["food"], 1)
	assert.Len(t, all.History["water"], 1)
	assert.Empty(t, all.History["sleep"])
}

func TestSaveProfileLevelUpEvent(t *testing.T) {
	uc, notifier := newSyncUseCase(t)

	require.NoError(t, uc.SaveProfile(&entities.UserProfile{Username: "alice", XP: 90, Level: 1}))
	assert.Empty(t, notifier.levelUps, "first save must not celebrate")

	require.NoError(t, uc.SaveProfile(&entities.UserProfile{Username: "alice", XP: 110, Level: 2}))
	assert.Equal(t, []int{2}, notifier.levelUps)

	// saving the same level again stays quiet
	require.NoError(t, uc.SaveProfile(&entities.UserProfile{Username: "alice", XP: 150, Level: 2}))
	assert.Equal(t, []int{2}, notifier.levelUps)
}

func TestSaveHistoryValidation(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	err := uc.SaveHistory(&entities.HistoryEntry{Category: "food"})
	assert.Error(t, err)

	err = uc.SaveHistory(&entities.HistoryEntry{Username: "alice", Category: "astrology"})
	assert.Error(t, err)
}

func TestSaveHistoryDuplicateImage(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	entry := &entities.HistoryEntry{
		Username: "alice", Category: "food",
		Timestamp: "2026-03-14T09:00:00Z", ImageHash: "abc123",
	}
	require.NoError(t, uc.SaveHistory(entry))

	err := uc.SaveHistory(&entities.HistoryEntry{
		Username: "alice", Category: "food",
		Timestamp: "2026-03-14T09:05:00Z", ImageHash: "abc123",
	})
	assert.ErrorIs(t, err, ErrDuplicateImage)

	// same hash in a different category is allowed
	require.NoError(t, uc.SaveHistory(&entities.HistoryEntry{
		Username: "alice", Category: "activity",
		Timestamp: "2026-03-14T09:05:00Z", ImageHash: "abc123",
	}))
}

func TestSaveHistoryEnforcesCap(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < entities.MaxHistoryPerCategory+5; i++ {
		require.NoError(t, uc.SaveHistory(&entities.HistoryEntry{
			Username:  "alice",
			Category:  "habit",
			Timestamp: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			Payload:   fmt.Sprintf(`{"n":%d}`, i),
		}))
	}

	entries, err := uc.History.GetByUserCategory("alice", "habit")
	require.NoError(t, err)
	assert.Len(t, entries, entities.MaxHistoryPerCategory)

	// the oldest rows are the ones that fell off
	assert.Equal(t, `{"n":104}`, entries[0].Payload)
	assert.Equal(t, `{"n":5}`, entries[len(entries)-1].Payload)
}

func TestClearHistory(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	require.NoError(t, uc.SaveHistory(&entities.HistoryEntry{
		Username: "alice", Category: "mood", Timestamp: "2026-03-14T09:00:00Z",
	}))
	require.NoError(t, uc.ClearHistory("alice", "mood"))

	entries, err := uc.History.GetByUserCategory("alice", "mood")
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Error(t, uc.ClearHistory("alice", "astrology"))
}

func TestSaveAndDeleteGoal(t *testing.T) {
	uc, _ := newSyncUseCase(t)

	goal := &entities.Goal{Username: "alice", Type: "weight", Target: 65}
	require.NoError(t, uc.SaveGoal(goal))
	require.NotEmpty(t, goal.ID)

	goal.Target = 63
	require.NoError(t, uc.SaveGoal(goal))

	goals, err := uc.Goals.GetByUser("alice")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 63.0, goals[0].Target)

	require.NoError(t, uc.DeleteGoal(goal.ID))
	goals, err = uc.Goals.GetByUser("alice")
	require.NoError(t, err)
	assert.Empty(t, goals)

	assert.Error(t, uc.SaveGoal(&entities.Goal{Username: "alice"}))
	assert.Error(t, uc.DeleteGoal(""))
}
