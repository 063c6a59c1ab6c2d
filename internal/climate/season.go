package climate

import (
	"fmt"
	"time"

	"github.com/i474232898/temperature-dashboard/internal/common"
)

var monthToSeason = map[time.Month]Season{
	time.December:  SeasonWinter,
	time.January:   SeasonWinter,
	time.February:  SeasonWinter,
	time.March:     SeasonSpring,
	time.April:     SeasonSpring,
	time.May:       SeasonSpring,
	time.June:      SeasonSummer,
	time.July:      SeasonSummer,
	time.August:    SeasonSummer,
	time.September: SeasonAutumn,
	time.October:   SeasonAutumn,
	time.November:  SeasonAutumn,
}

// SeasonForMonth returns the meteorological season of a month.
func SeasonForMonth(m time.Month) Season {
	return monthToSeason[m]
}

// ParseSeason parses a season name, ignoring case and surrounding whitespace.
func ParseSeason(s string) (Season, error) {
	switch Season(common.Normalize(s)) {
	case SeasonWinter:
		return SeasonWinter, nil
	case SeasonSpring:
		return SeasonSpring, nil
	case SeasonSummer:
		return SeasonSummer, nil
	case SeasonAutumn, "fall":
		return SeasonAutumn, nil
	}
	return "", fmt.Errorf("unknown season %q", s)
}
