package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// minTranscriptLength transcripts shorter than this yield no fields
const minTranscriptLength = 5

// rule inspects a transcript and returns the fields it recognizes
type rule func(h *Heuristic, text, lower string) Fields

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)my name is ([a-zA-Z\s]+)`),
		regexp.MustCompile(`(?i)i am ([a-zA-Z\s]+)`),
		regexp.MustCompile(`(?i)call me ([a-zA-Z\s]+)`),
		regexp.MustCompile(`(?i)i'm ([a-zA-Z\s]+)`),
	}

	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)i am (\d{1,2}) years old`),
		regexp.MustCompile(`(?i)(\d{1,2}) years old`),
		regexp.MustCompile(`(?i)my age is (\d{1,2})`),
	}

	// phone numbers introduced by a context word
	contextPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:phone|number|contact|call|mobile|cell).*?(\d{4}[-.\s]*\d{4})`),
		regexp.MustCompile(`(?i)(?:phone|number|contact|call|mobile|cell).*?(\d{3}[-.\s]*\d{3}[-.\s]*\d{4})`),
		regexp.MustCompile(`(?i)(?:phone|number|contact|call|mobile|cell).*?(\d{8,15})`),
	}

	standalonePhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{4}[-.\s]\d{4})\b`),
		regexp.MustCompile(`\b(\d{3}[-.\s]\d{3}[-.\s]\d{4})\b`),
		regexp.MustCompile(`\b(\d{8})\b`),
		regexp.MustCompile(`\b(\d{10})\b`),
	}

	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)i live at ([^.!?]+)`),
		regexp.MustCompile(`(?i)my address is ([^.!?]+)`),
		regexp.MustCompile(`(?i)located at ([^.!?]+)`),
	}

	emergencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)emergency contact.*?([a-zA-Z\s]+).*?(\d{8,})`),
		regexp.MustCompile(`(?i)in case of emergency.*?([a-zA-Z\s]+)`),
	}

	nonDigit = regexp.MustCompile(`\D`)
)

var interestKeywords = []string{
	"reading", "walking", "cooking", "gardening", "painting", "music", "dancing",
	"swimming", "yoga", "chess", "cards", "movies", "travel", "photography",
	"knitting", "crafts", "singing", "exercise", "meditation", "baking",
}

type keywordGroup struct {
	name     string
	keywords []string
}

var activityKeywords = []keywordGroup{
	{"indoor", []string{"indoor", "inside", "home"}},
	{"outdoor", []string{"outdoor", "outside", "garden", "park"}},
	{"social", []string{"social", "group", "people", "friends"}},
	{"quiet", []string{"quiet", "peaceful", "calm", "solo"}},
}

var languageKeywords = []string{"english", "mandarin", "chinese", "malay", "tamil", "hindi", "spanish", "french"}

// mobilityPhrases first group with a phrase present wins
var mobilityPhrases = []keywordGroup{
	{"wheelchair", []string{"wheelchair"}},
	{"low", []string{"limited mobility", "difficulty walking"}},
	{"moderate", []string{"moderate", "some mobility"}},
	{"high", []string{"active", "good mobility"}},
}

// Heuristic extracts profile fields with fixed phrase patterns and keyword lists.
// Every rule runs; a field set by an earlier rule is kept.
type Heuristic struct {
	now   func() time.Time
	rules []rule
}

// NewHeuristic creates the rule chain
func NewHeuristic() *Heuristic {
	return &Heuristic{
		now: time.Now,
		rules: []rule{
			genderRule,
			nameRule,
			ageRule,
			phoneRule,
			addressRule,
			bioRule,
			emergencyContactRule,
			interestsRule,
			activityPreferencesRule,
			languagesRule,
			mobilityRule,
		},
	}
}

// Extract runs every rule over text
func (h *Heuristic) Extract(text string) Fields {
	fields := Fields{}
	if len(strings.TrimSpace(text)) < minTranscriptLength {
		return fields
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range h.rules {
		fields.merge(r(h, text, lower))
	}
	return fields
}

// genderRule only literal self-descriptions count
func genderRule(_ *Heuristic, _, lower string) Fields {
	switch {
	case containsAny(lower, "i am a man", "i'm a man", "i am male"):
		return Fields{models.FieldGender: "male"}
	case containsAny(lower, "i am a woman", "i'm a woman", "i am female"):
		return Fields{models.FieldGender: "female"}
	case containsAny(lower, "non-binary", "non binary"):
		return Fields{models.FieldGender: "non-binary"}
	case containsAny(lower, "prefer not to say"):
		return Fields{models.FieldGender: "prefer-not-to-say"}
	}
	return nil
}

func nameRule(_ *Heuristic, text, _ string) Fields {
	m := firstSubmatch(namePatterns, text)
	if m == nil {
		return nil
	}
	parts := strings.Fields(m[1])
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return Fields{models.FieldFirstName: parts[0]}
	default:
		return Fields{
			models.FieldFirstName: parts[0],
			models.FieldLastName:  strings.Join(parts[1:], " "),
		}
	}
}

// ageRule the birth date is approximated as January 1st
func ageRule(h *Heuristic, text, _ string) Fields {
	m := firstSubmatch(agePatterns, text)
	if m == nil {
		return nil
	}
	age, err := strconv.Atoi(m[1])
	if err != nil || age <= 0 || age >= 120 {
		return nil
	}
	return Fields{
		models.FieldAge:         strconv.Itoa(age),
		models.FieldDateOfBirth: strconv.Itoa(h.now().Year()-age) + "-01-01",
	}
}

func phoneRule(_ *Heuristic, text, _ string) Fields {
	for _, p := range contextPhonePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if phone, ok := cleanPhone(m[1]); ok {
				return Fields{models.FieldPhoneNumber: phone}
			}
		}
	}
	for _, p := range standalonePhonePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if phone, ok := cleanPhone(m[1]); ok {
				return Fields{models.FieldPhoneNumber: phone}
			}
		}
	}
	return nil
}

func cleanPhone(s string) (string, bool) {
	digits := nonDigit.ReplaceAllString(s, "")
	return digits, len(digits) >= 8 && len(digits) <= 15
}

func addressRule(_ *Heuristic, text, _ string) Fields {
	if m := firstSubmatch(addressPatterns, text); m != nil {
		return Fields{models.FieldAddressLine1: strings.TrimSpace(m[1])}
	}
	return nil
}

// bioRule keeps the whole transcript when the speaker describes themselves
func bioRule(_ *Heuristic, text, lower string) Fields {
	if containsAny(lower, "about me", "i like", "i enjoy") {
		return Fields{models.FieldBio: text}
	}
	return nil
}

func emergencyContactRule(_ *Heuristic, text, _ string) Fields {
	m := firstSubmatch(emergencyPatterns, text)
	if m == nil {
		return nil
	}
	fields := Fields{models.FieldEmergencyContactName: strings.TrimSpace(m[1])}
	if len(m) > 2 && m[2] != "" {
		fields[models.FieldEmergencyContactPhone] = m[2]
	}
	return fields
}

func interestsRule(_ *Heuristic, _, lower string) Fields {
	return keywordList(models.FieldInterests, lower, interestKeywords)
}

func activityPreferencesRule(_ *Heuristic, _, lower string) Fields {
	var found []string
	for _, g := range activityKeywords {
		if containsAny(lower, g.keywords...) {
			found = append(found, g.name)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return Fields{models.FieldActivityPreferences: listValue(found)}
}

func languagesRule(_ *Heuristic, _, lower string) Fields {
	return keywordList(models.FieldLanguagePreferences, lower, languageKeywords)
}

func mobilityRule(_ *Heuristic, _, lower string) Fields {
	for _, g := range mobilityPhrases {
		if containsAny(lower, g.keywords...) {
			return Fields{models.FieldMobilityLevel: g.name}
		}
	}
	return nil
}

// keywordList the keywords present in lower, in dictionary order
func keywordList(field, lower string, keywords []string) Fields {
	var found []string
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			found = append(found, k)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return Fields{field: listValue(found)}
}

func firstSubmatch(patterns []*regexp.Regexp, text string) []string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m
		}
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
