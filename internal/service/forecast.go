package service

import "time"

const (
	// Patch cadence: a new version ships every six weeks, releases land on
	// Wednesdays and the preview broadcast airs on a Friday about a week
	// and a half earlier.
	versionCadenceDays    = 42
	broadcastLeadDays     = 11
	releaseWeekday        = time.Wednesday
	broadcastWeekday      = time.Friday
	maxBroadcastCorrected = 2
)

// snapToWeekday moves t to the closest occurrence of target, comparing the
// most recent prior occurrence against the soonest following one. Ties keep
// the prior occurrence.
func snapToWeekday(t time.Time, target time.Weekday) time.Time {
	daysBack := (int(t.Weekday()) - int(target) + 7) % 7
	daysAhead := (int(target) - int(t.Weekday()) + 7) % 7
	if daysBack <= daysAhead {
		return t.AddDate(0, 0, -daysBack)
	}
	return t.AddDate(0, 0, daysAhead)
}

// forecastNextVersion predicts the next version's release and broadcast dates
// from the current version's release date.
//
// The broadcast candidate is measured from the unsnapped release candidate,
// then snapped to Friday independently. When snapping pushes the broadcast on
// or past the release, it is walked back a week at a time, at most twice; the
// bound keeps the calculation total even for degenerate inputs.
func forecastNextVersion(releaseDate time.Time) (nextRelease, nextBroadcast time.Time) {
	candidateRelease := releaseDate.AddDate(0, 0, versionCadenceDays)
	nextRelease = snapToWeekday(candidateRelease, releaseWeekday)

	candidateBroadcast := candidateRelease.AddDate(0, 0, -broadcastLeadDays)
	nextBroadcast = snapToWeekday(candidateBroadcast, broadcastWeekday)

	for i := 0; i < maxBroadcastCorrected && !nextBroadcast.Before(nextRelease); i++ {
		nextBroadcast = snapToWeekday(nextBroadcast.AddDate(0, 0, -7), broadcastWeekday)
	}

	return nextRelease, nextBroadcast
}
