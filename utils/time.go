package utils

import (
	"time"

	"github.com/nzai/dayk/constants"
)

// DateZero truncate time to zero clock of the day in location
func DateZero(t time.Time, location *time.Location) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// TaipeiLocation return Asia/Taipei location, fixed +08:00 when tzdata is missing
func TaipeiLocation() *time.Location {
	location, err := time.LoadLocation(constants.TaipeiLocation)
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}

	return location
}

// TodayZero truncate now to today zero clock in Asia/Taipei
func TodayZero(now time.Time) time.Time {
	return DateZero(now, TaipeiLocation())
}
