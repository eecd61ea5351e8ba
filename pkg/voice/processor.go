package voice

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/pkg/extract"
)

// Extractor turns a transcript into profile fields
type Extractor interface {
	Extract(ctx context.Context, transcript string) extract.Result
}

// Result what one processed recording produced
type Result struct {
	Transcription string         `json:"transcription"`
	Fields        extract.Fields `json:"fields"`
	Source        extract.Source `json:"source"`
}

// Processor uploads buffered audio and extracts fields from the transcript
type Processor struct {
	transcriber *Transcriber
	extractor   Extractor
	logger      *zap.Logger
}

func NewProcessor(transcriber *Transcriber, extractor Extractor, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{transcriber: transcriber, extractor: extractor, logger: logger}
}

// Process transcribes chunks and extracts fields. Failures come back as *Error
// carrying the message for the user.
func (p *Processor) Process(ctx context.Context, chunks []Chunk) (*Result, error) {
	if len(chunks) == 0 {
		return nil, &Error{Message: MsgNoAudio, Err: ErrNoAudio}
	}

	format := DetectFormat(chunks)
	payload := Concat(chunks)
	p.logger.Debug("uploading recording",
		zap.String("file", format.FileName()),
		zap.Int("bytes", len(payload)),
		zap.Int("chunks", len(chunks)))

	text, err := p.transcriber.Transcribe(ctx, bytes.NewReader(payload), format)
	if err != nil {
		p.logger.Error("failed to transcribe recording", zap.Error(err))
		return nil, &Error{Message: UserMessage(err, p.transcriber.BaseURL()), Err: err}
	}

	extracted := p.extractor.Extract(ctx, text)
	return &Result{
		Transcription: text,
		Fields:        extracted.Fields,
		Source:        extracted.Source,
	}, nil
}
