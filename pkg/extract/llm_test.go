package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/models"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *stubProvider) Name() string { return "stub" }

func TestParseReplyEmbeddedInProse(t *testing.T) {
	fields, err := ParseReply("Sure! Here you go:\n```json\n{\"first_name\":\"Ann\",\"last_name\":null}\n```\nHope it helps.")
	require.NoError(t, err)
	assert.Equal(t, Fields{models.FieldFirstName: "Ann"}, fields)
}

func TestParseReplyCleansValues(t *testing.T) {
	reply := `{
		"first_name": "Lim",
		"age": 72,
		"city": "",
		"interests": ["chess", "tai chi"],
		"mobility_level": null,
		"favourite_colour": "blue"
	}`

	fields, err := ParseReply(reply)
	require.NoError(t, err)
	assert.Equal(t, Fields{
		models.FieldFirstName: "Lim",
		models.FieldAge:       "72",
		models.FieldInterests: `["chess","tai chi"]`,
	}, fields)
}

func TestParseReplyNumbersAndStrings(t *testing.T) {
	fields, err := ParseReply(`{"age": 65.0, "postal_code": 520123, "bio": " I like tea ", "address_line2": 12.5}`)
	require.NoError(t, err)
	assert.Equal(t, Fields{
		models.FieldAge:          "65",
		models.FieldPostalCode:   "520123",
		models.FieldBio:          " I like tea ",
		models.FieldAddressLine2: "12.5",
	}, fields)
}

func TestParseReplyWithoutJSON(t *testing.T) {
	_, err := ParseReply("I could not find anything.")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ParseReply(`{"first_name": "Ann"`)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestFirstJSONObject(t *testing.T) {
	block, ok := FirstJSONObject(`a {"bio":"likes {braces} and \"quotes\"","n":{"x":1}} b {"second":true}`)
	require.True(t, ok)
	assert.Equal(t, `{"bio":"likes {braces} and \"quotes\"","n":{"x":1}}`, block)
}

func TestBuildPromptEmbedsTranscript(t *testing.T) {
	prompt := BuildPrompt(`I said "hello"`)
	assert.Contains(t, prompt, `Transcript: "I said \"hello\""`)
	assert.Contains(t, prompt, "Use null for fields that aren't mentioned")
}

func TestLLMExtractorBreakerOpens(t *testing.T) {
	provider := &stubProvider{err: errors.New("503")}
	e := NewLLMExtractor(provider, nil)

	for i := 0; i < 5; i++ {
		_, err := e.Extract(context.Background(), "My name is Ann")
		assert.Error(t, err)
	}
	_, err := e.Extract(context.Background(), "My name is Ann")
	assert.Error(t, err)
	assert.Equal(t, 5, provider.calls)
}
