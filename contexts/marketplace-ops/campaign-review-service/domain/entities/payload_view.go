package entities

import (
	"encoding/json"
	"strings"
)

// PayloadView reads reviewer-facing summary values out of a stored edit
// payload. Older records were written with several field spellings, so each
// accessor falls through the legacy names before giving up. The view is
// read-only; applying an edit goes through the typed Campaign decoded at the
// gateway boundary.
type PayloadView map[string]json.RawMessage

func ParsePayloadView(raw []byte) (PayloadView, error) {
	if len(raw) == 0 {
		return PayloadView{}, nil
	}
	var view PayloadView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	return view, nil
}

func (p PayloadView) Platforms() []string {
	return p.stringList("platforms", "platform", "allowed_platforms", "selectedPlatforms")
}

func (p PayloadView) ContentGuidelines(contentType ContentType) string {
	switch contentType {
	case ContentTypeRepurposed:
		return p.text("guidelines_repurposed", "repurposedGuidelines", "content_guidelines", "guidelines")
	default:
		return p.text("guidelines_original", "originalGuidelines", "content_guidelines", "guidelines")
	}
}

func (p PayloadView) Hashtags(contentType ContentType) []string {
	switch contentType {
	case ContentTypeRepurposed:
		return p.stringList("hashtags_repurposed", "repurposedHashtags", "required_hashtags", "hashtags")
	default:
		return p.stringList("hashtags_original", "originalHashtags", "required_hashtags", "hashtags")
	}
}

func (p PayloadView) MinViews() int64 {
	return p.integer("min_views", "minViews", "minimum_views", "minimumViews")
}

func (p PayloadView) Budget() int64 {
	return p.integer("budget", "budget_total", "totalBudget")
}

func (p PayloadView) text(keys ...string) string {
	for _, key := range keys {
		raw, exists := p[key]
		if !exists {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func (p PayloadView) stringList(keys ...string) []string {
	for _, key := range keys {
		raw, exists := p[key]
		if !exists {
			continue
		}
		var values []string
		if err := json.Unmarshal(raw, &values); err == nil && len(values) > 0 {
			return values
		}
		// Oldest records stored a single platform as a bare string.
		var single string
		if err := json.Unmarshal(raw, &single); err == nil && strings.TrimSpace(single) != "" {
			return []string{single}
		}
	}
	return nil
}

func (p PayloadView) integer(keys ...string) int64 {
	for _, key := range keys {
		raw, exists := p[key]
		if !exists {
			continue
		}
		var value int64
		if err := json.Unmarshal(raw, &value); err == nil && value != 0 {
			return value
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if parsed, ok := parseInt(text); ok && parsed != 0 {
				return parsed
			}
		}
	}
	return 0
}

func parseInt(text string) (int64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	var value int64
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
		value = value*10 + int64(r-'0')
	}
	return value, true
}
