package scheduler

type Configuration struct {
	// Rotation shape. Day indexes are 0-based.
	RotationDays int
	DayStart     int // minutes from midnight
	DayEnd       int
	LunchStart   int
	LunchEnd     int

	// Roster partitioning.
	SmallRosterMax    int
	FixedGroupMin     int
	FixedGroupMax     int
	NumStandardGroups int
	NumReducedGroups  int

	// Standard strategy.
	StandardLabCoverage float64 // fraction of roster a lab must cover to settle

	// Flexible strategy.
	FlexAttempts          int
	FlexDurationTolerance int     // minutes
	FlexMinFactor         float64 // first reduction applied to the nominal minimum
	OverfillCoverage      float64 // roster fraction required for the overfill pass

	// Emergency strategy.
	EmergencyDurationTolerance int
	EmergencyLateDays          int // reduced labs scan only this many final days

	// Completion evaluation. The historical implementations disagreed on
	// these (85% vs 20%), so they are tunable rather than contractual.
	SuccessThreshold    float64 // dynamic mode, mean completion ratio
	FixedGroupThreshold float64 // fixed-group mode, scheduled pair ratio
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		RotationDays:               14,
		DayStart:                   8*60 + 30,
		DayEnd:                     16*60 + 30,
		LunchStart:                 12*60 + 30,
		LunchEnd:                   13*60 + 30,
		SmallRosterMax:             5,
		FixedGroupMin:              66,
		FixedGroupMax:              84,
		NumStandardGroups:          5,
		NumReducedGroups:           8,
		StandardLabCoverage:        0.7,
		FlexAttempts:               20,
		FlexDurationTolerance:      30,
		FlexMinFactor:              0.8,
		OverfillCoverage:           0.9,
		EmergencyDurationTolerance: 60,
		EmergencyLateDays:          4,
		SuccessThreshold:           0.7,
		FixedGroupThreshold:        0.8,
	}
}
