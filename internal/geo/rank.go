package geo

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// EarthRadiusKM is the mean Earth radius used by the Haversine formula.
const EarthRadiusKM = 6371.0

// DefaultMaxResults caps how many ranked candidates the map endpoint returns.
const DefaultMaxResults = 20

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Candidate is a rankable location. Nil coordinates mean the branch has not
// been geocoded and the candidate is skipped.
type Candidate struct {
	ID  uuid.UUID
	Lat *float64
	Lng *float64
}

// Ranked pairs a candidate id with its great-circle distance from the user.
type Ranked struct {
	ID         uuid.UUID
	DistanceKM float64
}

// Haversine computes the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RankByDistance orders candidates by ascending Haversine distance from the
// user location, keeping input order for ties, and truncates to maxResults.
// A nil user location yields no results rather than distances measured from
// the null island origin.
func RankByDistance(user *Point, candidates []Candidate, maxResults int) []Ranked {
	if user == nil {
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if c.Lat == nil || c.Lng == nil {
			continue
		}
		ranked = append(ranked, Ranked{
			ID:         c.ID,
			DistanceKM: Haversine(user.Lat, user.Lng, *c.Lat, *c.Lng),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKM < ranked[j].DistanceKM
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
