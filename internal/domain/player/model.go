package player

// Position is the FPL element type. The API encodes it as an integer 1..4.
type Position int

const (
	PositionGoalkeeper Position = 1
	PositionDefender   Position = 2
	PositionMidfielder Position = 3
	PositionForward    Position = 4
)

var positionNames = map[Position]string{
	PositionGoalkeeper: "GK",
	PositionDefender:   "DEF",
	PositionMidfielder: "MID",
	PositionForward:    "FWD",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

func (p Position) Valid() bool {
	_, ok := positionNames[p]
	return ok
}

// AllPositions in squad-slot order: GK, DEF, MID, FWD.
var AllPositions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

// Availability is derived from the API status letter.
type Availability string

const (
	Available   Availability = "available"
	Doubtful    Availability = "doubtful"
	Unavailable Availability = "unavailable"
)

// AvailabilityFromStatus maps the one-letter status code: "a" available,
// "d" doubtful, everything else (injured, suspended, unregistered) unavailable.
func AvailabilityFromStatus(status string) Availability {
	switch status {
	case "a":
		return Available
	case "d":
		return Doubtful
	default:
		return Unavailable
	}
}

// Player is one entry of the bootstrap element catalogue. Numeric-string
// fields from the wire payload are already parsed at the client boundary.
type Player struct {
	ID                       int
	FirstName                string
	SecondName               string
	WebName                  string
	Position                 Position
	TeamID                   int
	Status                   string
	NowCost                  int
	SelectedByPercent        float64
	Form                     float64
	PointsPerGame            float64
	TotalPoints              int
	Goals                    int
	Assists                  int
	CleanSheets              int
	Minutes                  int
	ExpectedGoals            float64
	ExpectedAssists          float64
	ExpectedGoalInvolvements float64
	ExpectedGoalsConceded    float64
}

func (p Player) DisplayName() string {
	if p.WebName != "" {
		return p.WebName
	}
	return p.FirstName + " " + p.SecondName
}

func (p Player) Availability() Availability {
	return AvailabilityFromStatus(p.Status)
}
