package fortune

import "errors"

var (
	// ErrInvalidPeriod is returned for any period outside daily/weekly/monthly/yearly.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrNoTemplatesAvailable is returned when the catalogue has no entries for a period.
	ErrNoTemplatesAvailable = errors.New("no templates available")

	// ErrInvalidReaction is returned for reactions other than positive/neutral.
	ErrInvalidReaction = errors.New("invalid reaction")

	// ErrInvalidHonorific is returned for honorific styles other than short/full/traveler.
	ErrInvalidHonorific = errors.New("invalid honorific style")

	// ErrInvalidBirthdate is returned when a birthdate is not a YYYY-MM-DD calendar date.
	ErrInvalidBirthdate = errors.New("invalid birthdate")
)
