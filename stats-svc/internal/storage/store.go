package storage

import (
	"context"
	"strconv"
	"time"

	"school-meal/stats-svc/internal/domain"
	"school-meal/stats-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const PopularDatesKey = "menu:popular_dates"

var (
	_ service.StoreInterface = (*Store)(nil)
	_ service.StatsInterface = (*Store)(nil)
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		rdb: rdb,
		ttl: ttl,
	}
}

func ViewsKey(serveDate string) string {
	return "menu:views:" + serveDate
}

func (s *Store) RecordView(ctx context.Context, msg domain.MenuViewedMessage) error {
	key := ViewsKey(msg.ServeDate)

	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, "views", 1)
	if msg.NoData {
		pipe.HIncrBy(ctx, key, "no_data_views", 1)
	}
	pipe.HSet(ctx, key, "last_viewed", msg.Timestamp.Unix())
	pipe.Expire(ctx, key, s.ttl)
	pipe.ZIncrBy(ctx, PopularDatesKey, 1, msg.ServeDate)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) DateStats(ctx context.Context, serveDate string) (domain.DateStats, error) {
	values, err := s.rdb.HGetAll(ctx, ViewsKey(serveDate)).Result()
	if err != nil {
		return domain.DateStats{}, err
	}

	stats := domain.DateStats{ServeDate: serveDate}
	stats.Views, _ = strconv.ParseInt(values["views"], 10, 64)
	stats.NoDataViews, _ = strconv.ParseInt(values["no_data_views"], 10, 64)
	stats.LastViewed, _ = strconv.ParseInt(values["last_viewed"], 10, 64)
	return stats, nil
}

func (s *Store) PopularDates(ctx context.Context, limit int64) ([]domain.DateViews, error) {
	entries, err := s.rdb.ZRevRangeWithScores(ctx, PopularDatesKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	dates := make([]domain.DateViews, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		dates = append(dates, domain.DateViews{ServeDate: member, Views: int64(entry.Score)})
	}
	return dates, nil
}
