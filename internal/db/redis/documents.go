package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hireboard/internal/db"
)

// Put stores the payload and indexes it by creation time in one round-trip.
func (s *Store) Put(ctx context.Context, collection string, doc db.Document) error {
	score := strconv.FormatInt(doc.CreatedAt.UnixMilli(), 10)
	cmds := rueidis.Commands{
		s.b().Set().Key(s.docKey(collection, doc.ID)).Value(string(doc.Data)).Build(),
		s.b().Arbitrary("ZADD").Keys(s.indexKey(collection)).Args(score, doc.ID).Build(),
	}
	ops := []string{db.OpSet, db.OpZAdd}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: ops[i], Err: fmt.Errorf("%s/%s: %w", collection, doc.ID, err)}
		}
	}
	return nil
}

// Get fetches one document. The creation time is read from the index.
func (s *Store) Get(ctx context.Context, collection, id string) (db.Document, error) {
	cmds := rueidis.Commands{
		s.b().Get().Key(s.docKey(collection, id)).Build(),
		s.b().Zscore().Key(s.indexKey(collection)).Member(id).Build(),
	}
	results := s.client.DoMulti(ctx, cmds...)

	data, err := results[0].AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return db.Document{}, db.ErrKeyNotFound
		}
		return db.Document{}, &db.Error{Op: db.OpGet, Err: err}
	}

	doc := db.Document{ID: id, Data: data}
	if score, err := results[1].AsFloat64(); err == nil {
		doc.CreatedAt = time.UnixMilli(int64(score)).UTC()
	}
	return doc, nil
}

// List returns every document newest first. Index entries whose payload
// vanished between ZRANGE and MGET are skipped.
func (s *Store) List(ctx context.Context, collection string) ([]db.Document, error) {
	rangeCmd := s.b().Arbitrary("ZRANGE").Keys(s.indexKey(collection)).
		Args("0", "-1", "REV", "WITHSCORES").Build()
	scores, err := s.do(ctx, rangeCmd).AsZScores()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	if len(scores) == 0 {
		return nil, nil
	}

	keys := make([]string, len(scores))
	for i, z := range scores {
		keys[i] = s.docKey(collection, z.Member)
	}

	msgs, err := s.do(ctx, s.b().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpMGet, Err: err}
	}

	out := make([]db.Document, 0, len(msgs))
	for i, msg := range msgs {
		if msg.IsNil() {
			continue
		}
		data, err := msg.AsBytes()
		if err != nil {
			return nil, &db.Error{Op: db.OpMGet, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		out = append(out, db.Document{
			ID:        scores[i].Member,
			CreatedAt: time.UnixMilli(int64(scores[i].Score)).UTC(),
			Data:      data,
		})
	}
	return out, nil
}

// Count returns the size of the collection index.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.do(ctx, s.b().Zcard().Key(s.indexKey(collection)).Build()).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpZCard, Err: err}
	}
	return int(n), nil
}
