package drafts

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rheannec/planora/internal/composer"
	"github.com/rheannec/planora/internal/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string][]byte
	failPut bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) get(key string) ([]byte, bool, error) {
	raw, found := f.data[key]
	return raw, found, nil
}

func (f *fakeKV) put(key string, value []byte) error {
	if f.failPut {
		return errors.New("write failed")
	}
	f.data[key] = value
	return nil
}

func strPtr(s string) *string { return &s }

func TestSave_WithoutID_MintsDistinctDrafts(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()

	first, err := store.Save(userID, composer.EventPatch{Title: strPtr("Anniv")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	second, err := store.Save(userID, composer.EventPatch{Title: strPtr("Noël")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.DraftID, second.DraftID)
	assert.Len(t, store.List(userID), 2)
}

func TestSave_WithID_ReplacesInPlace(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()

	first, err := store.Save(userID, composer.EventPatch{Title: strPtr("Anniv")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	second, err := store.Save(userID, composer.EventPatch{Title: strPtr("Anniv de Paul")}, sequencer.StepDate, &first.DraftID)
	require.NoError(t, err)
	assert.Equal(t, first.DraftID, second.DraftID)

	list := store.List(userID)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Payload.Title)
	assert.Equal(t, "Anniv de Paul", *list[0].Payload.Title)
	assert.Equal(t, sequencer.StepDate, list[0].LastStep)
}

func TestSave_StaleID_MintsNewDraft(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()
	stale := uuid.New()

	draft, err := store.Save(userID, composer.EventPatch{}, sequencer.StepTitle, &stale)
	require.NoError(t, err)
	assert.NotEqual(t, stale, draft.DraftID)
	assert.Len(t, store.List(userID), 1)
}

func TestSave_DenormalizesDisplayCache(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()

	draft, err := store.Save(userID, composer.EventPatch{
		Title: strPtr("Anniv de Paul"),
		Emoji: strPtr("🎂"),
	}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	assert.Equal(t, "Anniv de Paul", draft.Title)
	assert.Equal(t, "🎂", draft.Emoji)
}

func TestSave_PersistFailure_ReturnsError(t *testing.T) {
	kv := newFakeKV()
	kv.failPut = true
	store := newStore(kv)

	_, err := store.Save(uuid.New(), composer.EventPatch{}, sequencer.StepTitle, nil)
	assert.Error(t, err)
}

func TestDelete_UnknownID_LeavesListUnchanged(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()

	_, err := store.Save(userID, composer.EventPatch{Title: strPtr("Anniv")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	assert.False(t, store.Delete(userID, uuid.New()))
	assert.Len(t, store.List(userID), 1)
}

func TestDelete_RemovesDraft(t *testing.T) {
	store := newStore(newFakeKV())
	userID := uuid.New()

	draft, err := store.Save(userID, composer.EventPatch{Title: strPtr("Anniv")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	assert.True(t, store.Delete(userID, draft.DraftID))
	assert.Empty(t, store.List(userID))
}

func TestDelete_PersistFailure_ReturnsFalse(t *testing.T) {
	kv := newFakeKV()
	store := newStore(kv)
	userID := uuid.New()

	draft, err := store.Save(userID, composer.EventPatch{}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	kv.failPut = true
	assert.False(t, store.Delete(userID, draft.DraftID))
}

func TestList_MissingKey_ReturnsEmpty(t *testing.T) {
	store := newStore(newFakeKV())
	assert.Empty(t, store.List(uuid.New()))
}

func TestList_CorruptValue_FailsSoft(t *testing.T) {
	kv := newFakeKV()
	userID := uuid.New()
	kv.data[draftsKey(userID)] = []byte("{not json")

	store := newStore(kv)
	assert.Empty(t, store.List(userID))
}

func TestList_ScopedPerUser(t *testing.T) {
	store := newStore(newFakeKV())
	alice := uuid.New()
	bob := uuid.New()

	_, err := store.Save(alice, composer.EventPatch{Title: strPtr("Anniv")}, sequencer.StepTitle, nil)
	require.NoError(t, err)

	assert.Len(t, store.List(alice), 1)
	assert.Empty(t, store.List(bob))
}

func TestRoundTrip_PreservesAllFields(t *testing.T) {
	kv := newFakeKV()
	userID := uuid.New()

	payload := composer.EventPatch{
		Title: strPtr("Anniv de Paul"),
		Emoji: strPtr("🎂"),
		Hosts: []uuid.UUID{uuid.New()},
	}

	saved, err := newStore(kv).Save(userID, payload, sequencer.StepHost, nil)
	require.NoError(t, err)

	// A fresh store over the same backing row sees exactly what was saved.
	loaded, found := newStore(kv).Get(userID, saved.DraftID)
	require.True(t, found)
	assert.Equal(t, saved, loaded)
}
