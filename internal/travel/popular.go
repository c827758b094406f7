package travel

import "context"

const (
	defaultPopularLimit = 6
	maxPopularLimit     = 10
)

type popularCity struct {
	name          string
	score         int
	averageBudget int
	bestTime      string
	highlights    []string
}

var popularCities = []popularCity{
	{"Paris", 96, 1450, "Spring", []string{"Eiffel Tower", "Louvre Museum", "Notre-Dame Cathedral", "Seine River Cruise"}},
	{"London", 93, 1380, "Summer", []string{"Big Ben", "London Eye", "British Museum", "Tower Bridge"}},
	{"New York", 92, 1600, "Fall", []string{"Statue of Liberty", "Central Park", "Empire State Building", "Broadway Shows"}},
	{"Tokyo", 90, 1500, "Spring", []string{"Mount Fuji", "Sensoji Temple", "Tokyo Skytree", "Shibuya Crossing"}},
	{"Dubai", 88, 1350, "Winter", []string{"Burj Khalifa", "Dubai Mall", "Palm Jumeirah", "Dubai Fountain"}},
	{"Singapore", 87, 1200, "Spring", []string{"Marina Bay Sands", "Gardens by the Bay", "Singapore Zoo", "Sentosa Island"}},
	{"Barcelona", 86, 1100, "Summer", []string{"Sagrada Familia", "Park Güell", "Las Ramblas", "Gothic Quarter"}},
	{"Rome", 85, 1150, "Fall", []string{"Colosseum", "Vatican City", "Trevi Fountain", "Roman Forum"}},
	{"Amsterdam", 83, 1050, "Spring", []string{"Anne Frank House", "Van Gogh Museum", "Canal Cruise", "Rijksmuseum"}},
	{"Bangkok", 82, 700, "Winter", []string{"Grand Palace", "Wat Pho Temple", "Floating Markets", "Chatuchak Market"}},
}

type PopularDestination struct {
	Destination     Location `json:"destination"`
	PopularityScore int      `json:"popularityScore"`
	AverageBudget   int      `json:"averageBudget"`
	BestTimeToVisit string   `json:"bestTimeToVisit"`
	Highlights      []string `json:"highlights"`
}

// PopularDestinations resolves the first limit cities of the fixed list.
// Cities whose lookup fails or finds nothing are left out.
func (g *Gateway) PopularDestinations(ctx context.Context, limit int) []PopularDestination {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	out := make([]PopularDestination, 0, limit)
	for _, city := range popularCities[:limit] {
		locs, _, err := g.fetchLocations(ctx, city.name, 1)
		if err != nil || len(locs) == 0 {
			continue
		}
		out = append(out, PopularDestination{
			Destination:     locs[0],
			PopularityScore: city.score,
			AverageBudget:   city.averageBudget,
			BestTimeToVisit: city.bestTime,
			Highlights:      append([]string(nil), city.highlights...),
		})
	}
	return out
}
