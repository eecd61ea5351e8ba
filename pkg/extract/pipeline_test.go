package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YongERong/wth-caifan-lovers/models"
)

func TestPipelinePrefersModel(t *testing.T) {
	provider := &stubProvider{reply: `{"first_name":"Ann","gender":null}`}
	p := NewPipeline(NewLLMExtractor(provider, nil), nil)

	result := p.Extract(context.Background(), "My name is John Smith")
	assert.Equal(t, SourceLLM, result.Source)
	assert.Equal(t, Fields{models.FieldFirstName: "Ann"}, result.Fields)
}

func TestPipelineFallsBackOnError(t *testing.T) {
	provider := &stubProvider{err: errors.New("quota exceeded")}
	p := NewPipeline(NewLLMExtractor(provider, nil), nil)

	result := p.Extract(context.Background(), "My name is John Smith")
	assert.Equal(t, SourceHeuristic, result.Source)
	assert.Equal(t, "John", result.Fields[models.FieldFirstName])
	assert.Equal(t, "Smith", result.Fields[models.FieldLastName])
}

func TestPipelineFallsBackOnUnparsableReply(t *testing.T) {
	provider := &stubProvider{reply: "no idea"}
	p := NewPipeline(NewLLMExtractor(provider, nil), nil)

	result := p.Extract(context.Background(), "I enjoy yoga")
	assert.Equal(t, SourceHeuristic, result.Source)
	assert.Equal(t, `["yoga"]`, result.Fields[models.FieldInterests])
}

func TestPipelineWithoutModel(t *testing.T) {
	result := NewPipeline(nil, nil).Extract(context.Background(), "call me Rose")
	assert.Equal(t, SourceHeuristic, result.Source)
	assert.Equal(t, "Rose", result.Fields[models.FieldFirstName])
}
