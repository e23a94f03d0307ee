package data

import (
	"context"
	"encoding/json"
	"fmt"

	"cinelist/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

type collectionRepo struct {
	kv  biz.KeyValueStore
	log *log.Helper
}

// NewCollectionRepo creates a repository storing the whole collection list under one key
func NewCollectionRepo(kv biz.KeyValueStore, logger log.Logger) biz.CollectionRepo {
	return &collectionRepo{
		kv:  kv,
		log: log.NewHelper(logger),
	}
}

func (r *collectionRepo) Load(ctx context.Context) ([]*biz.MovieCollection, error) {
	raw, ok, err := r.kv.Get(ctx, collectionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var stored []*MovieCollection
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", biz.ErrCorruptCollections, err)
	}

	out := make([]*biz.MovieCollection, 0, len(stored))
	for _, c := range stored {
		if c == nil {
			continue
		}
		out = append(out, collectionToBiz(c))
	}
	r.log.Debugf("loaded %d collections", len(out))
	return out, nil
}

func (r *collectionRepo) Save(ctx context.Context, collections []*biz.MovieCollection) error {
	stored := make([]*MovieCollection, 0, len(collections))
	for _, c := range collections {
		stored = append(stored, collectionToModel(c))
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode collections: %w", err)
	}
	return r.kv.Set(ctx, collectionsKey, string(raw))
}
