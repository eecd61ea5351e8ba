package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/pkg/ai"
)

// ErrNoJSON the reply carried no complete JSON object
var ErrNoJSON = errors.New("no JSON object found in response")

const promptTemplate = `
You are an AI assistant helping to extract profile information from speech transcripts.
Extract the following information from this transcript and return it as a JSON object.

Profile fields to extract:
- first_name: Person's first name
- last_name: Person's last name
- date_of_birth: Birth date in YYYY-MM-DD format (estimate if only age given)
- age: Age as a number (if mentioned)
- gender: "male", "female", "non-binary", or "prefer-not-to-say" (infer from context if mentioned)
- phone_number: Phone number (digits only)
- address_line1: Street address
- address_line2: Apartment/unit number
- postal_code: Postal/zip code
- city: City name
- bio: Personal description or about section
- emergency_contact_name: Emergency contact person's name
- emergency_contact_phone: Emergency contact phone number
- interests: Array of interests/hobbies as JSON array
- mobility_level: "high", "moderate", "low", or "wheelchair"
- activity_preferences: Array like ["indoor", "outdoor", "social", "quiet"] as JSON array
- language_preferences: Array of languages as JSON array

Rules:
1. Only extract information that is clearly mentioned
2. For interests, activity_preferences, and language_preferences, return as JSON arrays
3. If age is mentioned, calculate approximate date_of_birth (assume January 1st)
4. For gender, only infer if explicitly stated (e.g., "I am a man/woman", "I'm male/female") or from clear context clues
5. Be respectful with gender - when in doubt, use null rather than assume
6. Return only the JSON object, no other text
7. Use null for fields that aren't mentioned

Transcript: %q

Return only a valid JSON object:`

// BuildPrompt embeds a transcript in the extraction instruction
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}

// LLMExtractor asks a generative model for the field mapping
type LLMExtractor struct {
	provider ai.Provider
	breaker  *gobreaker.CircuitBreaker
	cache    *Cache
	logger   *zap.Logger
}

// WithCache reuses earlier replies for identical transcripts
func (e *LLMExtractor) WithCache(cache *Cache) *LLMExtractor {
	e.cache = cache
	return e
}

// NewLLMExtractor wraps provider in a circuit breaker that opens after five
// consecutive failures and probes again after a minute
func NewLLMExtractor(provider ai.Provider, logger *zap.Logger) *LLMExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai-extract",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &LLMExtractor{provider: provider, breaker: breaker, logger: logger}
}

// Extract sends the transcript and parses the first JSON object of the reply
func (e *LLMExtractor) Extract(ctx context.Context, transcript string) (Fields, error) {
	if e.cache != nil {
		if fields, ok := e.cache.Get(transcript); ok {
			return fields, nil
		}
	}

	reply, err := e.breaker.Execute(func() (interface{}, error) {
		return e.provider.Generate(ctx, BuildPrompt(transcript))
	})
	if err != nil {
		return nil, err
	}

	fields, err := ParseReply(reply.(string))
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(transcript, fields)
	}
	return fields, nil
}

// ParseReply decodes the first top-level JSON object found in text
func ParseReply(text string) (Fields, error) {
	block, ok := FirstJSONObject(text)
	if !ok {
		return nil, ErrNoJSON
	}

	dec := json.NewDecoder(strings.NewReader(block))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}
	return cleanFields(raw), nil
}

// FirstJSONObject returns the first balanced {...} block in text, skipping
// braces inside JSON strings
func FirstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
