package database

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/YongERong/wth-caifan-lovers/models"
)

const swipeHistoryTable = "swipe_history"

// tableClient the part of the Supabase client the store needs
type tableClient interface {
	From(table string) *postgrest.QueryBuilder
}

// SupabaseSwipeStore swipe history in the hosted swipe_history table.
// Row-level security is bypassed with the service role key, so every query is
// scoped to the swiper explicitly.
type SupabaseSwipeStore struct {
	client tableClient
}

// NewSupabaseSwipeStore connects with the project URL and service role key
func NewSupabaseSwipeStore(url, key string) (*SupabaseSwipeStore, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseSwipeStore{client: client}, nil
}

// swipeRow an insert into the hosted table, which stores actions as yes/no
type swipeRow struct {
	SwiperID   string `json:"swiper_id"`
	ActivityID string `json:"activity_id"`
	Action     string `json:"action"`
}

// normalizeActions maps stored yes/no values back to like/pass
func normalizeActions(rows []models.SwipeDecision) []models.SwipeDecision {
	for i := range rows {
		if action, err := models.ParseSwipeAction(string(rows[i].Action)); err == nil {
			rows[i].Action = action
		}
	}
	return rows
}

// Insert lets the table assign id and swiped_at and copies them back
func (s *SupabaseSwipeStore) Insert(ctx context.Context, decision *models.SwipeDecision) error {
	row := swipeRow{SwiperID: decision.SwiperID, ActivityID: decision.ActivityID, Action: decision.Action.HostedValue()}

	var inserted []models.SwipeDecision
	if _, err := s.client.From(swipeHistoryTable).
		Insert(row, false, "", "representation", "").
		ExecuteTo(&inserted); err != nil {
		return fmt.Errorf("insert swipe: %w", err)
	}
	if len(inserted) > 0 {
		*decision = normalizeActions(inserted)[0]
	}
	return nil
}

func (s *SupabaseSwipeStore) ListBySwiper(ctx context.Context, swiperID string) ([]models.SwipeDecision, error) {
	var decisions []models.SwipeDecision
	if _, err := s.client.From(swipeHistoryTable).
		Select("*", "", false).
		Eq("swiper_id", swiperID).
		Order("swiped_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&decisions); err != nil {
		return nil, fmt.Errorf("list swipes: %w", err)
	}
	return normalizeActions(decisions), nil
}

func (s *SupabaseSwipeStore) DeleteByID(ctx context.Context, swiperID, id string) error {
	var deleted []models.SwipeDecision
	if _, err := s.client.From(swipeHistoryTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("swiper_id", swiperID).
		ExecuteTo(&deleted); err != nil {
		return fmt.Errorf("delete swipe: %w", err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SupabaseSwipeStore) DeleteBySwiper(ctx context.Context, swiperID string) (int64, error) {
	var deleted []models.SwipeDecision
	if _, err := s.client.From(swipeHistoryTable).
		Delete("representation", "").
		Eq("swiper_id", swiperID).
		ExecuteTo(&deleted); err != nil {
		return 0, fmt.Errorf("clear swipes: %w", err)
	}
	return int64(len(deleted)), nil
}
