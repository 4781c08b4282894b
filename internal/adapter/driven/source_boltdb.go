package driven

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

const sourcesBucket = "sources"

// SourceBoltDBRepository implements the SourceRepository port using BoltDB.
type SourceBoltDBRepository struct {
	db *bbolt.DB
}

// NewSourceBoltDBRepository creates a new BoltDB-backed source
// repository. It initializes the required bucket if it doesn't exist.
func NewSourceBoltDBRepository(db *bbolt.DB) (*SourceBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sourcesBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SourceBoltDBRepository{db: db}, nil
}

// Save persists a playlist source to BoltDB.
func (r *SourceBoltDBRepository) Save(ctx context.Context, src catalog.Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}

		data, err := json.Marshal(src)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(src.ID), data)
	})
}

// FindByID retrieves a source by its id from BoltDB.
func (r *SourceBoltDBRepository) FindByID(ctx context.Context, id string) (catalog.Source, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Source{}, err
	}

	var src catalog.Source

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return catalog.ErrSourceNotFound
		}

		return json.Unmarshal(data, &src)
	})

	return src, err
}

// FindAll retrieves all sources from BoltDB ordered by creation time.
func (r *SourceBoltDBRepository) FindAll(ctx context.Context) ([]catalog.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sources []catalog.Source

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var src catalog.Source
			if err := json.Unmarshal(v, &src); err != nil {
				return err
			}
			sources = append(sources, src)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Bucket iteration is keyed by id; callers expect ingestion order.
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].CreatedAt.Before(sources[j].CreatedAt)
	})

	if sources == nil {
		sources = []catalog.Source{}
	}

	return sources, nil
}

// Rename changes a source's display name in BoltDB.
func (r *SourceBoltDBRepository) Rename(ctx context.Context, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return catalog.ErrSourceNotFound
		}

		var src catalog.Source
		if err := json.Unmarshal(data, &src); err != nil {
			return err
		}

		src.Name = name

		updated, err := json.Marshal(src)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(id), updated)
	})
}

// Delete removes a source by its id from BoltDB.
func (r *SourceBoltDBRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return catalog.ErrSourceNotFound
		}

		return bucket.Delete([]byte(id))
	})
}

// Ping checks if the BoltDB database is accessible and operational.
func (r *SourceBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sourcesBucket))
		if bucket == nil {
			return errors.New("sources bucket not found")
		}
		return nil
	})
}
