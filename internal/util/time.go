package util

import "time"

var cstLocation *time.Location

func init() {
	var err error
	cstLocation, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		cstLocation = time.FixedZone("CST", 8*60*60)
	}
}

// NowCST returns the current time on the CN game server clock, which is what
// both wikis publish their schedules in.
func NowCST() time.Time {
	return time.Now().In(cstLocation)
}

func FormatCST(t time.Time, layout string) string {
	return t.In(cstLocation).Format(layout)
}
