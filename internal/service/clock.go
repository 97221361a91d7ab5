package service

import "time"

// now is the service clock. Timestamps are stored with second precision.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
