// Package drafts persists resumable checkpoints of events under
// construction. The whole per-user draft list lives in a single key-value
// row; draft counts are single-digit in practice, so every save overwrites
// the full list in one write.
package drafts

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rheannec/planora/internal/composer"
	"github.com/rheannec/planora/internal/models"
	"github.com/rheannec/planora/internal/sequencer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Draft struct {
	DraftID  uuid.UUID           `json:"draft_id"`
	Payload  composer.EventPatch `json:"payload"`
	LastStep sequencer.Step      `json:"last_step"`
	// Title and Emoji are denormalized from the payload so draft lists
	// render without deserializing the full payload.
	Title     string    `json:"title,omitempty"`
	Emoji     string    `json:"emoji,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type kv interface {
	get(key string) ([]byte, bool, error)
	put(key string, value []byte) error
}

type Store struct {
	kv kv
}

func NewStore(db *gorm.DB) *Store {
	return &Store{kv: gormKV{db: db}}
}

func newStore(kv kv) *Store {
	return &Store{kv: kv}
}

func draftsKey(userID uuid.UUID) string {
	return "drafts:" + userID.String()
}

// List returns the user's drafts. A missing key or a payload that no
// longer deserializes yields an empty list, never an error.
func (s *Store) List(userID uuid.UUID) []Draft {
	raw, found, err := s.kv.get(draftsKey(userID))
	if err != nil {
		log.Printf("drafts: loading drafts for user %s: %v", userID, err)
		return []Draft{}
	}
	if !found {
		return []Draft{}
	}

	var list []Draft
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Printf("drafts: discarding undecodable draft list for user %s: %v", userID, err)
		return []Draft{}
	}
	return list
}

// Get returns one draft by id.
func (s *Store) Get(userID, draftID uuid.UUID) (Draft, bool) {
	for _, d := range s.List(userID) {
		if d.DraftID == draftID {
			return d, true
		}
	}
	return Draft{}, false
}

// Save checkpoints a payload. When existingID matches a known draft it is
// replaced in place; otherwise a new id is minted and appended, including
// when existingID went stale. The full list is persisted before returning,
// so a returned draft is a durable one.
func (s *Store) Save(userID uuid.UUID, payload composer.EventPatch, lastStep sequencer.Step, existingID *uuid.UUID) (Draft, error) {
	list := s.List(userID)

	draft := Draft{
		Payload:   payload,
		LastStep:  lastStep,
		UpdatedAt: time.Now().UTC(),
	}
	if payload.Title != nil {
		draft.Title = *payload.Title
	}
	if payload.Emoji != nil {
		draft.Emoji = *payload.Emoji
	}

	replaced := false
	if existingID != nil {
		for i := range list {
			if list[i].DraftID == *existingID {
				draft.DraftID = *existingID
				list[i] = draft
				replaced = true
				break
			}
		}
	}
	if !replaced {
		draft.DraftID = uuid.New()
		list = append(list, draft)
	}

	if err := s.persist(userID, list); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Delete removes a draft. It returns false for an unknown id, leaving the
// list untouched, and false when the reduced list cannot be persisted.
func (s *Store) Delete(userID, draftID uuid.UUID) bool {
	list := s.List(userID)

	index := -1
	for i := range list {
		if list[i].DraftID == draftID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	list = append(list[:index], list[index+1:]...)
	if err := s.persist(userID, list); err != nil {
		log.Printf("drafts: persisting draft list for user %s after delete: %v", userID, err)
		return false
	}
	return true
}

func (s *Store) persist(userID uuid.UUID, list []Draft) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.put(draftsKey(userID), raw)
}

type gormKV struct {
	db *gorm.DB
}

func (g gormKV) get(key string) ([]byte, bool, error) {
	var row models.KeyValue
	if err := g.db.Where("key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Value, true, nil
}

func (g gormKV) put(key string, value []byte) error {
	row := models.KeyValue{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
