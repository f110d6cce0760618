package services

import "time"

// clockOrDefault lets tests pin every service to one clock.
func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
