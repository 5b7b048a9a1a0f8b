package release

import (
	"fmt"
	"time"
)

// Tag formats t as YYYYMMDDhhmmss using the local wall clock.
//
// The tag is local time on purpose: it sorts releases built on one machine in
// commit order, but the same commit formats differently under another TZ.
func Tag(t time.Time) string {
	t = t.Local()

	return fmt.Sprintf("%d%02d%02d%02d%02d%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}
