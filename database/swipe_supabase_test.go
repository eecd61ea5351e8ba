package database

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/postgrest-go"

	"github.com/YongERong/wth-caifan-lovers/models"
)

func newPostgrestStore(t *testing.T, handler http.HandlerFunc) *SupabaseSwipeStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &SupabaseSwipeStore{client: postgrest.NewClient(server.URL+"/rest/v1", "public", nil)}
}

func TestSupabaseInsert(t *testing.T) {
	store := newPostgrestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/swipe_history", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"swiper_id":"alice","activity_id":"a-1","action":"yes"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[{"id":"row-1","swiper_id":"alice","activity_id":"a-1","action":"yes","swiped_at":"2024-09-21T09:00:00.123456+00:00"}]`)
	})

	d := &models.SwipeDecision{SwiperID: "alice", ActivityID: "a-1", Action: models.SwipeLike}
	require.NoError(t, store.Insert(context.Background(), d))
	assert.Equal(t, "row-1", d.ID)
	assert.Equal(t, models.SwipeLike, d.Action)
	assert.Equal(t, 2024, d.SwipedAt.Year())
}

func TestSupabaseListBySwiper(t *testing.T) {
	store := newPostgrestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "eq.alice", q.Get("swiper_id"))
		assert.Contains(t, q.Get("order"), "swiped_at.desc")

		io.WriteString(w, `[
			{"id":"3","swiper_id":"alice","activity_id":"a-3","action":"no","swiped_at":"2024-09-21T11:00:00+00:00"},
			{"id":"2","swiper_id":"alice","activity_id":"a-2","action":"yes","swiped_at":"2024-09-21T10:00:00+00:00"},
			{"id":"1","swiper_id":"alice","activity_id":"a-1","action":"like","swiped_at":"2024-09-21T09:00:00+00:00"}
		]`)
	})

	decisions, err := store.ListBySwiper(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, decisions, 3)
	assert.Equal(t, models.SwipePass, decisions[0].Action)
	assert.Equal(t, models.SwipeLike, decisions[1].Action)
	assert.Equal(t, models.SwipeLike, decisions[2].Action)
	assert.Equal(t, models.SwipeStats{Total: 3, Liked: 2, Passed: 1}, models.NewSwipeStats(decisions))
}

func TestSupabaseDeleteByIDScopedToSwiper(t *testing.T) {
	store := newPostgrestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "eq.row-9", q.Get("id"))
		assert.Equal(t, "eq.bob", q.Get("swiper_id"))
		io.WriteString(w, `[]`)
	})

	err := store.DeleteByID(context.Background(), "bob", "row-9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupabaseDeleteBySwiper(t *testing.T) {
	store := newPostgrestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.alice", r.URL.Query().Get("swiper_id"))
		io.WriteString(w, `[{"id":"1"},{"id":"2"}]`)
	})

	n, err := store.DeleteBySwiper(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSupabaseErrorStatus(t *testing.T) {
	store := newPostgrestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"JWT expired"}`)
	})

	_, err := store.ListBySwiper(context.Background(), "alice")
	assert.Error(t, err)
}
