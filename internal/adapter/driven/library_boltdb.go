package driven

import (
	"context"
	"encoding/json"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

const (
	favoritesBucket = "favorites"
	historyBucket   = "history"

	// Both buckets hold a single ordered JSON list: favorites and
	// history are positional collections, not keyed lookups.
	entriesKey = "entries"
)

// FavoriteBoltDBRepository implements the FavoriteRepository port
// using BoltDB.
type FavoriteBoltDBRepository struct {
	db *bbolt.DB
}

// NewFavoriteBoltDBRepository creates a new BoltDB-backed favorites
// repository. It initializes the required bucket if it doesn't exist.
func NewFavoriteBoltDBRepository(db *bbolt.DB) (*FavoriteBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(favoritesBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &FavoriteBoltDBRepository{db: db}, nil
}

// Add appends an entry to the favorites list. Adding an entry that is
// already present is a no-op.
func (r *FavoriteBoltDBRepository) Add(ctx context.Context, entry catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(favoritesBucket))
		if bucket == nil {
			return errors.New("favorites bucket not found")
		}

		entries, err := loadEntryList(bucket)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if e.ID == entry.ID {
				return nil
			}
		}

		return storeEntryList(bucket, append(entries, entry))
	})
}

// Remove deletes a favorite by entry id. Removing an unknown id is a
// no-op.
func (r *FavoriteBoltDBRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(favoritesBucket))
		if bucket == nil {
			return errors.New("favorites bucket not found")
		}

		entries, err := loadEntryList(bucket)
		if err != nil {
			return err
		}

		kept := make([]catalog.Entry, 0, len(entries))
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}

		return storeEntryList(bucket, kept)
	})
}

// FindAll retrieves all favorites in insertion order.
func (r *FavoriteBoltDBRepository) FindAll(ctx context.Context) ([]catalog.Entry, error) {
	return findAllEntries(ctx, r.db, favoritesBucket)
}

// HistoryBoltDBRepository implements the HistoryRepository port using
// BoltDB.
type HistoryBoltDBRepository struct {
	db *bbolt.DB
}

// NewHistoryBoltDBRepository creates a new BoltDB-backed history
// repository. It initializes the required bucket if it doesn't exist.
func NewHistoryBoltDBRepository(db *bbolt.DB) (*HistoryBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &HistoryBoltDBRepository{db: db}, nil
}

// Touch moves the entry to the front of the history, dropping any
// earlier occurrence, and trims the list to catalog.HistoryLimit.
func (r *HistoryBoltDBRepository) Touch(ctx context.Context, entry catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return errors.New("history bucket not found")
		}

		entries, err := loadEntryList(bucket)
		if err != nil {
			return err
		}

		updated := make([]catalog.Entry, 0, len(entries)+1)
		updated = append(updated, entry)
		for _, e := range entries {
			if e.ID != entry.ID {
				updated = append(updated, e)
			}
		}

		if len(updated) > catalog.HistoryLimit {
			updated = updated[:catalog.HistoryLimit]
		}

		return storeEntryList(bucket, updated)
	})
}

// FindAll retrieves the history, most recently watched first.
func (r *HistoryBoltDBRepository) FindAll(ctx context.Context) ([]catalog.Entry, error) {
	return findAllEntries(ctx, r.db, historyBucket)
}

// Clear removes the whole history.
func (r *HistoryBoltDBRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return errors.New("history bucket not found")
		}
		return bucket.Delete([]byte(entriesKey))
	})
}

func loadEntryList(bucket *bbolt.Bucket) ([]catalog.Entry, error) {
	data := bucket.Get([]byte(entriesKey))
	if data == nil {
		return nil, nil
	}

	var entries []catalog.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func storeEntryList(bucket *bbolt.Bucket, entries []catalog.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return bucket.Put([]byte(entriesKey), data)
}

func findAllEntries(ctx context.Context, db *bbolt.DB, bucketName string) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []catalog.Entry

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return errors.New(bucketName + " bucket not found")
		}

		loaded, err := loadEntryList(bucket)
		if err != nil {
			return err
		}
		entries = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []catalog.Entry{}
	}

	return entries, nil
}
