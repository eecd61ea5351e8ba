package voice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultChunkInterval how often a capture hands over buffered audio
const DefaultChunkInterval = time.Second

// Microphone an audio input device
type Microphone interface {
	IsTypeSupported(mimeType string) bool
	// Open starts capturing; onData receives a chunk every interval
	Open(ctx context.Context, mimeType string, interval time.Duration, onData func(Chunk)) (Capture, error)
}

// Capture a running capture. Stop delivers any remaining audio through onData
// before it returns and releases the device.
type Capture interface {
	Stop() error
}

// FileMicrophone replays an audio file as if it were being recorded
type FileMicrophone struct {
	Path string
	// ChunkSize bytes delivered per interval
	ChunkSize int
}

// IsTypeSupported only the file's own format is supported
func (m *FileMicrophone) IsTypeSupported(mimeType string) bool {
	return formatForPath(m.Path).MimeType == mimeType
}

func formatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range PreferredFormats {
		if f.Extension == ext {
			return f
		}
	}
	return FormatWAV
}

func (m *FileMicrophone) Open(ctx context.Context, mimeType string, interval time.Duration, onData func(Chunk)) (Capture, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("open audio source: %w", err)
	}
	size := m.ChunkSize
	if size <= 0 {
		size = 32 * 1024
	}

	c := &fileCapture{
		data:     data,
		size:     size,
		mimeType: mimeType,
		onData:   onData,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go c.run(ctx, interval)
	return c, nil
}

type fileCapture struct {
	mu       sync.Mutex
	data     []byte
	size     int
	mimeType string
	onData   func(Chunk)
	once     sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

func (c *fileCapture) run(ctx context.Context, interval time.Duration) {
	defer close(c.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.emit(c.size)
		}
	}
}

// emit hands over up to n buffered bytes; n < 0 hands over everything left
func (c *fileCapture) emit(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) == 0 {
		return
	}
	if n < 0 || n > len(c.data) {
		n = len(c.data)
	}
	chunk := Chunk{Data: c.data[:n], Type: c.mimeType}
	c.data = c.data[n:]
	c.onData(chunk)
}

func (c *fileCapture) Stop() error {
	c.once.Do(func() {
		close(c.done)
		<-c.stopped
		c.emit(-1)
	})
	return nil
}
