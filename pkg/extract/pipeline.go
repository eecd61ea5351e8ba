package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/pkg/metrics"
)

// Result a field mapping and the path that produced it
type Result struct {
	Fields Fields `json:"fields"`
	Source Source `json:"source"`
}

// Pipeline tries the model first and falls back to the heuristic on any failure
type Pipeline struct {
	llm       *LLMExtractor
	heuristic *Heuristic
	logger    *zap.Logger
}

// NewPipeline llm may be nil, in which case only the heuristic runs
func NewPipeline(llm *LLMExtractor, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{llm: llm, heuristic: NewHeuristic(), logger: logger}
}

// Extract never fails; the heuristic result is returned when the model cannot help
func (p *Pipeline) Extract(ctx context.Context, transcript string) Result {
	if p.llm != nil {
		fields, err := p.llm.Extract(ctx, transcript)
		if err == nil {
			metrics.Extracted(string(SourceLLM))
			return Result{Fields: fields, Source: SourceLLM}
		}
		p.logger.Warn("model extraction failed, falling back to pattern matching", zap.Error(err))
	}

	metrics.Extracted(string(SourceHeuristic))
	return Result{Fields: p.heuristic.Extract(transcript), Source: SourceHeuristic}
}
