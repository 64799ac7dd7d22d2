package timeutil

import "time"

// IST is the Indian Standard Time location (UTC+5:30). All workflow
// timestamps are stamped in IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseDate parses a YYYY-MM-DD date in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

const DateLayout = "2006-01-02"
