// pkg/core/match.go
package core

import "time"

// Match is a recording session started by the driver.
type Match struct {
	ID        uint
	SessionID string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}
