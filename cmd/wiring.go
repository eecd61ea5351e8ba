package main

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/configs"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/pkg/ai"
	"github.com/YongERong/wth-caifan-lovers/pkg/extract"
	"github.com/YongERong/wth-caifan-lovers/pkg/swipe"
	"github.com/YongERong/wth-caifan-lovers/pkg/voice"
)

const (
	extractCacheEntries = 256
	extractCacheTTL     = 30 * time.Minute
	aiTimeout           = 30 * time.Second
)

func newSwipeStore(cfg *configs.Config) (database.SwipeStore, error) {
	if cfg.Swipe.Store == "supabase" {
		log.Info("swipe history stored in supabase", zap.String("url", cfg.Supabase.URL))
		return database.NewSupabaseSwipeStore(cfg.Supabase.URL, cfg.Supabase.Key)
	}
	return database.NewGormSwipeStore(database.DB), nil
}

func newIDMap() (*swipe.IDMap, error) {
	activities, err := database.ListActivities(database.DB)
	if err != nil {
		return nil, err
	}
	ids := swipe.IDMapFromActivities(activities)
	log.Info("activity id map loaded", zap.Int("activities", len(activities)), zap.Int("mapped", ids.Len()))
	return ids, nil
}

// newPipeline falls back to heuristics only when no AI key is configured
func newPipeline(cfg *configs.Config) (*extract.Pipeline, error) {
	provider, err := ai.NewProvider(ai.ProviderConfig{
		Type:     ai.ProviderType(cfg.AI.Provider),
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Endpoint: cfg.AI.URL,
	}, &http.Client{Timeout: aiTimeout})
	if errors.Is(err, ai.ErrNotConfigured) {
		log.Warn("no AI key configured, using heuristic extraction only")
		return extract.NewPipeline(nil, log), nil
	}
	if err != nil {
		return nil, err
	}

	llm := extract.NewLLMExtractor(provider, log).
		WithCache(extract.NewCache(extractCacheEntries, extractCacheTTL))
	log.Info("AI extraction enabled", zap.String("provider", provider.Name()))
	return extract.NewPipeline(llm, log), nil
}

func newProcessor(cfg *configs.Config, pipeline *extract.Pipeline) *voice.Processor {
	transcriber := voice.NewTranscriber(cfg.Speech.URL, &http.Client{Timeout: cfg.Speech.Timeout})
	return voice.NewProcessor(transcriber, pipeline, log)
}
