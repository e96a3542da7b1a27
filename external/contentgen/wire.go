package contentgen

import "strings"

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Items      *schema            `json:"items,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) firstText() string {
	for _, candidate := range r.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

func newGenerateRequest(prompt string, responseSchema *schema) generateRequest {
	mime := "text/plain"
	if responseSchema != nil {
		mime = "application/json"
	}
	return generateRequest{
		Contents: []requestContent{{
			Role:  "user",
			Parts: []requestPart{{Text: prompt}},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: mime,
			ResponseSchema:   responseSchema,
			Temperature:      0.9,
		},
	}
}

var playerListSchema = &schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"name":     {Type: "STRING"},
			"position": {Type: "STRING", Enum: []string{"GK", "DEF", "MID", "ATT"}},
			"rating":   {Type: "INTEGER"},
			"age":      {Type: "INTEGER"},
			"value":    {Type: "NUMBER"},
			"team":     {Type: "STRING"},
		},
		Required: []string{"name", "position", "rating", "age", "value"},
	},
}

var matchSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"homeScore": {Type: "INTEGER"},
		"awayScore": {Type: "INTEGER"},
		"summary":   {Type: "STRING"},
		"events": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"minute":      {Type: "INTEGER"},
					"description": {Type: "STRING"},
					"type":        {Type: "STRING", Enum: []string{"goal", "card", "substitution", "normal"}},
					"team":        {Type: "STRING", Enum: []string{"home", "away"}},
				},
				Required: []string{"minute", "description", "type", "team"},
			},
		},
	},
	Required: []string{"homeScore", "awayScore", "summary", "events"},
}

type generatedPlayer struct {
	Name     string  `json:"name" validate:"required"`
	Position string  `json:"position" validate:"required"`
	Rating   int     `json:"rating" validate:"gte=1,lte=99"`
	Age      int     `json:"age" validate:"gte=15,lte=45"`
	Value    float64 `json:"value" validate:"gte=0"`
	Team     string  `json:"team"`
}

type generatedMatch struct {
	HomeScore *int             `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int             `json:"awayScore" validate:"required,gte=0"`
	Summary   string           `json:"summary"`
	Events    []generatedEvent `json:"events" validate:"dive"`
}

type generatedEvent struct {
	Minute      int    `json:"minute" validate:"gte=0,lte=130"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=goal card substitution normal"`
	Team        string `json:"team" validate:"required,oneof=home away neutral"`
}
