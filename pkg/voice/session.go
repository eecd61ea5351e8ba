package voice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase where a session is in its recording cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRecording
	PhaseProcessing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseProcessing:
		return "processing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// SessionState a snapshot of a session
type SessionState struct {
	Phase  Phase
	Format Format
	Chunks int
	// Error message of the last failed cycle, cleared by the next Start
	Error string
}

// Session one microphone's record, transcribe and extract cycle.
// Only one cycle runs at a time.
type Session struct {
	mu        sync.Mutex
	mic       Microphone
	processor *Processor
	interval  time.Duration
	logger    *zap.Logger

	phase   Phase
	format  Format
	chunks  []Chunk
	capture Capture
	lastErr string
}

// NewSession creates an idle session
func NewSession(mic Microphone, processor *Processor, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		mic:       mic,
		processor: processor,
		interval:  DefaultChunkInterval,
		logger:    logger,
	}
}

// Start acquires the microphone and begins buffering audio
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle {
		return ErrBusy
	}
	s.lastErr = ""
	s.chunks = nil
	s.format = SelectFormat(s.mic.IsTypeSupported)

	capture, err := s.mic.Open(ctx, s.format.MimeType, s.interval, s.onData)
	if err != nil {
		s.logger.Error("failed to start recording", zap.Error(err))
		s.lastErr = MsgMicrophone
		return &Error{Message: MsgMicrophone, Err: err}
	}

	s.capture = capture
	s.phase = PhaseRecording
	s.logger.Debug("recording started", zap.String("mime_type", s.format.MimeType))
	return nil
}

func (s *Session) onData(c Chunk) {
	if len(c.Data) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture != nil {
		s.chunks = append(s.chunks, c)
	}
}

// Stop releases the microphone and processes what was recorded. The session is
// idle again when Stop returns, whatever the outcome.
func (s *Session) Stop(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.phase != PhaseRecording {
		s.mu.Unlock()
		return nil, ErrNotRecording
	}
	s.phase = PhaseProcessing
	capture := s.capture
	s.mu.Unlock()

	if err := capture.Stop(); err != nil {
		s.logger.Warn("failed to release microphone", zap.Error(err))
	}

	s.mu.Lock()
	s.capture = nil
	chunks := s.chunks
	s.mu.Unlock()

	result, err := s.processor.Process(ctx, chunks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseIdle
	s.chunks = nil
	if err != nil {
		s.lastErr = err.Error()
		return nil, err
	}
	return result, nil
}

// State snapshot
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Phase:  s.phase,
		Format: s.format,
		Chunks: len(s.chunks),
		Error:  s.lastErr,
	}
}
