package shot

import "time"

// Shot is a single manually logged golf shot.
type Shot struct {
	ID        string    `json:"id"`
	Club      string    `json:"club"`
	Distance  int       `json:"distance"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats aggregates the logged shots. Driving figures cover driver shots
// only; DriverShots lets callers distinguish a true zero from no data.
type Stats struct {
	TotalShots         int     `json:"totalShots"`
	DriverShots        int     `json:"driverShots"`
	AvgDrivingDistance float64 `json:"avgDrivingDistance"`
	FairwayHitPct      float64 `json:"fairwayHitPct"`
}

// Clubs lists the selectable clubs, driver first.
var Clubs = []string{
	"Driver", "3 Wood", "5 Wood", "4 Iron", "5 Iron", "6 Iron", "7 Iron",
	"8 Iron", "9 Iron", "Pitching Wedge", "Sand Wedge", "Lob Wedge", "Putter",
}

// Results lists the selectable shot outcomes.
var Results = []string{
	"Fairway Hit", "Green in Regulation", "Missed Left", "Missed Right",
	"Short", "Long", "In the Hole",
}

// ValidClub reports whether the club is in the fixed vocabulary.
func ValidClub(club string) bool {
	for _, c := range Clubs {
		if c == club {
			return true
		}
	}
	return false
}

// ValidResult reports whether the result is in the fixed vocabulary.
func ValidResult(result string) bool {
	for _, r := range Results {
		if r == result {
			return true
		}
	}
	return false
}
