package extract

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// Source which path produced a field mapping
type Source string

const (
	SourceLLM       Source = "llm"
	SourceHeuristic Source = "heuristic"
)

// Fields profile field name to string value; list fields hold JSON array text
type Fields map[string]string

// merge copies entries of other that f does not already have
func (f Fields) merge(other Fields) {
	for k, v := range other {
		if _, ok := f[k]; !ok {
			f[k] = v
		}
	}
}

// formatNumber renders 65.0 as "65" and 1.5 as "1.5"
func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func listValue(items []string) string {
	b, _ := json.Marshal(items)
	return string(b)
}

// cleanFields turns a decoded JSON object into a field mapping. Unknown keys,
// nulls and empty strings are dropped and arrays are re-encoded as JSON text.
// Strings are kept verbatim and numbers use their shortest decimal form.
func cleanFields(raw map[string]interface{}) Fields {
	fields := Fields{}
	for key, value := range raw {
		if !models.IsProfileField(key) {
			continue
		}
		switch v := value.(type) {
		case nil:
		case string:
			if v != "" {
				fields[key] = v
			}
		case json.Number:
			fields[key] = formatNumber(v)
		case []interface{}:
			b, err := json.Marshal(v)
			if err == nil {
				fields[key] = string(b)
			}
		case map[string]interface{}:
			b, err := json.Marshal(v)
			if err == nil {
				fields[key] = string(b)
			}
		default:
			fields[key] = fmt.Sprint(v)
		}
	}
	return fields
}
