// ABOUTME: Fixed mood scenarios with graded relevance ground truth
// ABOUTME: Each scenario names the corpus items a good ranking should surface

package ranking

import "github.com/moodreel/moodreel/internal/models"

// Scenario is one offline evaluation case: a mood query plus relevance
// judgments over the fixture corpus (itemID -> grade, higher is better).
type Scenario struct {
	ID       string
	Name     string
	Mood     string
	Strategy models.Strategy
	Filters  models.Filters
	K        int
	Relevant map[string]float64
}

// FixtureItems is the corpus every scenario is judged against. Overviews
// are written so the theme encoder places each item on a clear axis.
func FixtureItems() []models.CorpusItem {
	return []models.CorpusItem{
		{ImdbID: "bm01", Title: "The Hollow Manor", Overview: "a haunted house where a grieving ghost lingers", Year: 2019, Rating: 7.6, Votes: 85000, Metascore: 72, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm02", Title: "Widow's Walk", Overview: "a ghost haunts the house of a widowed lighthouse keeper", Year: 2016, Rating: 7.2, Votes: 42000, Metascore: 68, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm03", Title: "Candle Hill", Overview: "a family moves into a haunted ghost filled house", Year: 1982, Rating: 7.9, Votes: 150000, Metascore: 80, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm04", Title: "Summer Camp Massacre", Overview: "a masked killer stalks teenagers with a machete", Year: 1983, Rating: 7.0, Votes: 120000, Metascore: 55, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm05", Title: "Midnight Caller", Overview: "a slasher killer stalks babysitters across town", Year: 1979, Rating: 7.4, Votes: 98000, Metascore: 62, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm06", Title: "Trench Dweller", Overview: "a deep sea creature monster attacks a drilling rig", Year: 2011, Rating: 6.8, Votes: 35000, Metascore: 58, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm07", Title: "Spore", Overview: "a fungal monster creature spreads through a research base", Year: 2021, Rating: 7.1, Votes: 50000, Metascore: 66, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm08", Title: "Gravewatch", Overview: "a haunted house ghost anthology across decades", Year: 2020, Rating: 8.0, Votes: 190000, Metascore: 84, Language: "English", MediaType: models.MediaTypeSeries},
		{ImdbID: "bm09", Title: "Red Snow", Overview: "a killer stalks a snowed-in ski resort", Year: 2004, Rating: 6.3, Votes: 22000, Metascore: 48, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm10", Title: "Dagok", Overview: "a monster creature rises from a polluted river", Year: 2006, Rating: 7.5, Votes: 130000, Metascore: 85, Language: "Korean", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm11", Title: "Static", Overview: "", Year: 2014, Rating: 7.3, Votes: 60000, Metascore: 60, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "bm12", Title: "Pale Halls", Overview: "a ghost roams the haunted halls of a shuttered hotel", Year: 1998, Rating: 6.5, Votes: 30000, Metascore: 52, Language: "English", MediaType: models.MediaTypeMovie},
	}
}

// Scenarios returns the evaluation suite
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:       "haunted-house",
			Name:     "Haunted house, unified strategy",
			Mood:     "a slow haunted house with a sad ghost",
			Strategy: models.StrategyUnified,
			K:        5,
			Relevant: map[string]float64{
				"bm01": 3, "bm03": 3, "bm02": 2, "bm12": 2, "bm08": 1,
			},
		},
		{
			ID:       "slasher",
			Name:     "Classic slasher, semantic strategy",
			Mood:     "a masked slasher killer stalks the suburbs",
			Strategy: models.StrategySemantic,
			K:        5,
			Relevant: map[string]float64{
				"bm04": 3, "bm05": 3, "bm09": 2,
			},
		},
		{
			ID:       "creature",
			Name:     "Creature feature with rating floor",
			Mood:     "a monster creature hunts people somewhere remote",
			Strategy: models.StrategyUnified,
			Filters:  models.Filters{MinRating: 7.0},
			K:        5,
			Relevant: map[string]float64{
				"bm07": 3, "bm10": 3, "bm06": 1,
			},
		},
		{
			ID:       "popular-fallback",
			Name:     "Keyword and popularity only",
			Mood:     "haunted house ghost",
			Strategy: models.StrategyPopular,
			K:        5,
			Relevant: map[string]float64{
				"bm01": 3, "bm03": 3, "bm02": 2, "bm12": 2, "bm08": 2,
			},
		},
	}
}
