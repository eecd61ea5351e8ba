package voice

import (
	"strings"
)

// Format an audio encoding the recorder may produce
type Format struct {
	MimeType  string
	Extension string
}

// FileName name the upload is sent under
func (f Format) FileName() string {
	return "recording" + f.Extension
}

var (
	FormatMP4  = Format{MimeType: "audio/mp4", Extension: ".mp4"}
	FormatWAV  = Format{MimeType: "audio/wav", Extension: ".wav"}
	FormatOGG  = Format{MimeType: "audio/ogg", Extension: ".ogg"}
	FormatWebM = Format{MimeType: "audio/webm", Extension: ".webm"}

	// FallbackFormat used when the recorder reports none of the preferred formats
	FallbackFormat = Format{MimeType: "audio/webm;codecs=opus", Extension: ".webm"}
)

// PreferredFormats formats the speech service accepts, most compatible first
var PreferredFormats = []Format{FormatMP4, FormatWAV, FormatOGG, FormatWebM}

// SelectFormat first preferred format the recorder supports
func SelectFormat(supported func(mimeType string) bool) Format {
	for _, f := range PreferredFormats {
		if supported(f.MimeType) {
			return f
		}
	}
	return FallbackFormat
}

// Chunk one slice of buffered audio
type Chunk struct {
	Data []byte
	Type string
}

// DetectFormat content type of a recording, judged from its first chunk.
// Unknown or missing types are sent as WAV.
func DetectFormat(chunks []Chunk) Format {
	if len(chunks) == 0 {
		return FormatWAV
	}
	chunkType := strings.ToLower(chunks[0].Type)
	for _, f := range []struct {
		marker string
		format Format
	}{
		{"mp4", FormatMP4},
		{"wav", FormatWAV},
		{"ogg", FormatOGG},
		{"webm", FormatWebM},
	} {
		if strings.Contains(chunkType, f.marker) {
			return f.format
		}
	}
	return FormatWAV
}

// Concat joins chunks into one payload
func Concat(chunks []Chunk) []byte {
	size := 0
	for _, c := range chunks {
		size += len(c.Data)
	}
	payload := make([]byte, 0, size)
	for _, c := range chunks {
		payload = append(payload, c.Data...)
	}
	return payload
}
