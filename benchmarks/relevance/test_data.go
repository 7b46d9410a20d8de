// ABOUTME: Labelled relevance scenarios and the fixture corpus they run against
// ABOUTME: Each scenario names a query talk and the talks a good ranking must return

package relevance

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harper/talk-recommender/internal/models"
)

// TestScenario is one labelled query
type TestScenario struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Query       string   `yaml:"query" json:"query"`
	K           int      `yaml:"k" json:"k"`
	Relevant    []string `yaml:"relevant" json:"relevant"`
	Forbidden   []string `yaml:"forbidden,omitempty" json:"forbidden,omitempty"`
}

// TestResult is the outcome of one scenario
type TestResult struct {
	TestID         string         `json:"test_id"`
	TestName       string         `json:"test_name"`
	Retrieved      []string       `json:"retrieved"`
	Precision      float64        `json:"precision_at_k"`
	Recall         float64        `json:"recall_at_k"`
	ReciprocalRank float64        `json:"reciprocal_rank"`
	Hit            bool           `json:"hit"`
	QueryLatency   string         `json:"query_latency"`
	Status         string         `json:"status"` // "PASS" or "FAIL"
	Details        map[string]any `json:"details,omitempty"`
	ErrorMessage   string         `json:"error,omitempty"`
}

// caseFile is the on-disk layout for custom scenarios
type caseFile struct {
	Scenarios []TestScenario `yaml:"scenarios"`
}

// LoadScenarios reads scenarios from a YAML document
func LoadScenarios(r io.Reader) ([]TestScenario, error) {
	var file caseFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	for i, s := range file.Scenarios {
		if s.Query == "" {
			return nil, fmt.Errorf("scenario %d has no query", i+1)
		}
		if s.K <= 0 {
			return nil, fmt.Errorf("scenario %q: k must be positive, got %d", s.ID, s.K)
		}
		if len(s.Relevant) == 0 {
			return nil, fmt.Errorf("scenario %q lists no relevant talks", s.ID)
		}
	}
	return file.Scenarios, nil
}

// LoadScenariosFile reads scenarios from a YAML file
func LoadScenariosFile(path string) ([]TestScenario, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("open scenarios: %w", err)
	}
	defer file.Close()
	return LoadScenarios(file)
}

func talkURL(slug string) string {
	return "https://www.ted.com/talks/" + slug + "\n"
}

// FixtureCorpus returns a small corpus of three topics with three talks each.
// Talks share vocabulary within a topic and almost none across topics.
func FixtureCorpus() []models.RawDocument {
	return []models.RawDocument{
		{RawKey: talkURL("space_rockets"), Text: "Rockets launch satellites into orbit. Rocket engines burn fuel to escape gravity and reach orbit."},
		{RawKey: talkURL("moon_landing"), Text: "Astronauts flew rockets to the moon. The lunar orbit and gravity of the moon guided astronauts home."},
		{RawKey: talkURL("mars_rovers"), Text: "Rovers explore Mars after rockets carry them through orbit. Mars gravity is weak, rovers roll slowly."},
		{RawKey: talkURL("bread_baking"), Text: "Bakers knead dough, yeast makes bread rise, ovens bake bread crust golden."},
		{RawKey: talkURL("fermented_foods"), Text: "Yeast and bacteria ferment dough, cabbage and milk. Fermentation preserves food and flavor."},
		{RawKey: talkURL("kitchen_knives"), Text: "Chefs sharpen knives to slice bread and vegetables. Kitchen knives help chefs cut food quickly."},
		{RawKey: talkURL("jazz_improvisation"), Text: "Jazz musicians improvise melodies. Saxophone and piano trade solos in jazz clubs."},
		{RawKey: talkURL("piano_practice"), Text: "Practice piano scales daily. Musicians build melodies and rhythm at the piano."},
		{RawKey: talkURL("drum_rhythm"), Text: "Drummers hold rhythm. Drums and bass power the rhythm that musicians follow."},
	}
}

// GetAllTests returns the built-in scenarios for FixtureCorpus
func GetAllTests() []TestScenario {
	return []TestScenario{
		{
			ID:          "space",
			Name:        "Space talks by URL",
			Description: "A rocket talk should surface the other two space talks first",
			Query:       "https://www.ted.com/talks/space_rockets",
			K:           2,
			Relevant:    []string{"MOON LANDING", "MARS ROVERS"},
			Forbidden:   []string{"BREAD BAKING", "JAZZ IMPROVISATION"},
		},
		{
			ID:          "cooking",
			Name:        "Cooking talks by slug",
			Description: "Shared kitchen vocabulary links knives to bread and fermentation",
			Query:       "kitchen_knives",
			K:           2,
			Relevant:    []string{"BREAD BAKING", "FERMENTED FOODS"},
			Forbidden:   []string{"SPACE ROCKETS"},
		},
		{
			ID:          "music",
			Name:        "Music talks by name",
			Description: "Display names resolve to the same talk as URLs",
			Query:       "Piano Practice",
			K:           2,
			Relevant:    []string{"JAZZ IMPROVISATION", "DRUM RHYTHM"},
		},
		{
			ID:          "baking",
			Name:        "Nearest neighbour of bread",
			Description: "Dough and yeast make fermentation the closest talk to baking",
			Query:       "bread baking",
			K:           1,
			Relevant:    []string{"FERMENTED FOODS"},
		},
	}
}
