package voice

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/pkg/extract"
)

// fakeMicrophone delivers its chunks when the capture stops
type fakeMicrophone struct {
	supported []string
	chunks    []Chunk
	openErr   error

	openedWith string
	released   bool
}

func (m *fakeMicrophone) IsTypeSupported(mimeType string) bool {
	for _, s := range m.supported {
		if s == mimeType {
			return true
		}
	}
	return false
}

func (m *fakeMicrophone) Open(ctx context.Context, mimeType string, interval time.Duration, onData func(Chunk)) (Capture, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.openedWith = mimeType
	return &fakeCapture{mic: m, onData: onData}, nil
}

type fakeCapture struct {
	mic    *fakeMicrophone
	onData func(Chunk)
}

func (c *fakeCapture) Stop() error {
	for _, chunk := range c.mic.chunks {
		c.onData(chunk)
	}
	c.mic.released = true
	return nil
}

func speechServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestSession(mic Microphone, serviceURL string) *Session {
	processor := NewProcessor(NewTranscriber(serviceURL, nil), extract.NewPipeline(nil, nil), nil)
	return NewSession(mic, processor, nil)
}

func TestSessionFullCycle(t *testing.T) {
	server := speechServer(t, http.StatusOK, `{"transcription":"My name is John Smith and I enjoy chess"}`)
	mic := &fakeMicrophone{
		supported: []string{"audio/webm", "audio/wav"},
		chunks:    []Chunk{{Data: []byte("RIFF"), Type: "audio/wav"}, {Data: []byte("data"), Type: "audio/wav"}},
	}
	s := newTestSession(mic, server.URL)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, PhaseRecording, s.State().Phase)
	assert.Equal(t, "audio/wav", mic.openedWith)

	assert.ErrorIs(t, s.Start(context.Background()), ErrBusy)

	result, err := s.Stop(context.Background())
	require.NoError(t, err)
	assert.True(t, mic.released)
	assert.Equal(t, "My name is John Smith and I enjoy chess", result.Transcription)
	assert.Equal(t, extract.SourceHeuristic, result.Source)
	assert.Equal(t, "John", result.Fields["first_name"])
	assert.Equal(t, `["chess"]`, result.Fields["interests"])

	state := s.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Equal(t, 0, state.Chunks)
	assert.Empty(t, state.Error)
}

func TestSessionMicrophoneDenied(t *testing.T) {
	mic := &fakeMicrophone{openErr: errors.New("permission denied")}
	s := newTestSession(mic, "http://localhost:1")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, MsgMicrophone)

	state := s.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Equal(t, MsgMicrophone, state.Error)
	assert.Equal(t, FallbackFormat, state.Format)
}

func TestSessionNoAudio(t *testing.T) {
	mic := &fakeMicrophone{supported: []string{"audio/mp4"}}
	s := newTestSession(mic, "http://localhost:1")

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNoAudio)
	assert.Equal(t, MsgNoAudio, s.State().Error)
	assert.Equal(t, PhaseIdle, s.State().Phase)
}

func TestSessionServerErrorThenRetry(t *testing.T) {
	server := speechServer(t, http.StatusUnprocessableEntity, `{"detail":"bad format"}`)
	mic := &fakeMicrophone{
		supported: []string{"audio/mp4"},
		chunks:    []Chunk{{Data: []byte("x"), Type: "audio/mp4"}},
	}
	s := newTestSession(mic, server.URL)

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Stop(context.Background())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 422, httpErr.Status)
	assert.Equal(t, MsgUnsupported, s.State().Error)
	assert.Equal(t, PhaseIdle, s.State().Phase)

	// the error is cleared when the next recording starts
	require.NoError(t, s.Start(context.Background()))
	assert.Empty(t, s.State().Error)
}

func TestSessionStopWhileIdle(t *testing.T) {
	s := newTestSession(&fakeMicrophone{}, "http://localhost:1")
	_, err := s.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestFileMicrophone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.ogg")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o600))

	mic := &FileMicrophone{Path: path, ChunkSize: 3}
	assert.True(t, mic.IsTypeSupported("audio/ogg"))
	assert.False(t, mic.IsTypeSupported("audio/mp4"))

	var chunks []Chunk
	capture, err := mic.Open(context.Background(), "audio/ogg", time.Hour, func(c Chunk) {
		chunks = append(chunks, c)
	})
	require.NoError(t, err)
	require.NoError(t, capture.Stop())
	require.NoError(t, capture.Stop())

	assert.Equal(t, []byte("0123456789"), Concat(chunks))
	assert.Equal(t, FormatOGG, DetectFormat(chunks))
}
