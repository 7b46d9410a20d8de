// ABOUTME: Talk metadata models used for descriptive statistics
// ABOUTME: One TalkMetadata per row of the talk metadata dataset
package models

import (
	"errors"
	"strings"
)

// TalkMetadata holds the descriptive columns of a talk
type TalkMetadata struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Name        string `json:"name,omitempty"`
	MainSpeaker string `json:"main_speaker"`
	Event       string `json:"event,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Comments    int64  `json:"comments"`
	Views       int64  `json:"views"`
	Duration    int64  `json:"duration"`
	Languages   int64  `json:"languages"`
	NumSpeaker  int64  `json:"num_speaker"`
}

// Validate checks that the metadata row can be ranked and displayed
func (m *TalkMetadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("talk title cannot be empty")
	}
	if m.Comments < 0 || m.Views < 0 || m.Duration < 0 || m.Languages < 0 || m.NumSpeaker < 0 {
		return errors.New("talk counters cannot be negative")
	}
	return nil
}

// MetricRanking is one row of a descriptive ranking such as "top 10 by views"
type MetricRanking struct {
	Rank  int    `json:"rank"`
	Key   string `json:"key,omitempty"`
	Title string `json:"title,omitempty"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}
