package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

// BoltSlots keeps the slot pair in a bbolt file so that each change to
// the pair is a single transaction
type BoltSlots struct {
	db *bbolt.DB
}

var _ SlotStore = (*BoltSlots)(nil)

// OpenBoltSlots opens (creating if needed) the session database at `path`
func OpenBoltSlots(path string) (*BoltSlots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to provision session directory for path[%s]: %w", path, err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database at path[%s]: %w", path, err)
	}
	return &BoltSlots{db: db}, nil
}

func (b *BoltSlots) Close() error {
	return b.db.Close()
}

// Load returns nil when no session is stored. A lone slot left behind
// by an older writer is removed so the pair is consistent afterwards
func (b *BoltSlots) Load() (*Slots, error) {
	var slots *Slots
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		token := bucket.Get([]byte(SlotToken))
		userData := bucket.Get([]byte(SlotUserData))
		if token == nil || userData == nil {
			if token != nil || userData != nil {
				return clearSlots(bucket)
			}
			return nil
		}
		slots = &Slots{
			Token:    string(token),
			UserData: append([]byte(nil), userData...),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return slots, nil
}

func (b *BoltSlots) Save(slots Slots) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		if err := bucket.Put([]byte(SlotToken), []byte(slots.Token)); err != nil {
			return fmt.Errorf("failed to write %s slot: %w", SlotToken, err)
		}
		if err := bucket.Put([]byte(SlotUserData), slots.UserData); err != nil {
			return fmt.Errorf("failed to write %s slot: %w", SlotUserData, err)
		}
		return nil
	})
}

func (b *BoltSlots) Clear() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		return clearSlots(bucket)
	})
}

func clearSlots(bucket *bbolt.Bucket) error {
	if err := bucket.Delete([]byte(SlotToken)); err != nil {
		return fmt.Errorf("failed to remove %s slot: %w", SlotToken, err)
	}
	if err := bucket.Delete([]byte(SlotUserData)); err != nil {
		return fmt.Errorf("failed to remove %s slot: %w", SlotUserData, err)
	}
	return nil
}
