package voice

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

var (
	// ErrNoTranscript the service answered without a transcription
	ErrNoTranscript = errors.New("no transcription in response")
	// ErrNoAudio recording stopped before any audio was buffered
	ErrNoAudio = errors.New("no audio data recorded")
	// ErrBusy a recording or processing cycle is already running
	ErrBusy = errors.New("recording already in progress")
	// ErrNotRecording stop was requested while idle or processing
	ErrNotRecording = errors.New("not recording")
)

const (
	MsgMicrophone   = "Failed to access microphone. Please check permissions."
	MsgNoAudio      = "No audio data recorded"
	MsgNoTranscript = "No speech detected or unexpected response format. Please try again."
	MsgUnsupported  = "Audio format not supported by server. The server may need to accept .webm files."
	MsgGeneric      = "Failed to process speech. Please try again."
)

// HTTPError non-2xx answer from the speech service
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP error! status: %d", e.Status)
	if e.Detail != "" {
		msg += " - " + e.Detail
	}
	return msg
}

// Error a failed cycle together with the message shown to the user
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage translates a processing failure into what the user is told
func UserMessage(err error, serviceURL string) string {
	var httpErr *HTTPError
	var urlErr *url.Error
	var netErr net.Error

	switch {
	case errors.Is(err, ErrNoAudio):
		return MsgNoAudio
	case errors.Is(err, ErrNoTranscript):
		return MsgNoTranscript
	case errors.As(err, &httpErr):
		switch httpErr.Status {
		case http.StatusUnprocessableEntity:
			return MsgUnsupported
		case http.StatusInternalServerError:
			return fmt.Sprintf("Server error: %s. Check speech server logs for details.", httpErr.Error())
		default:
			return "Speech service error: " + httpErr.Error()
		}
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return fmt.Sprintf("Cannot connect to speech service at %s. Please check if the speech server is running.", serviceURL)
	default:
		return MsgGeneric
	}
}
