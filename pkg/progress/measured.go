package progress

import (
	"regexp"
	"strconv"
	"time"

	"github.com/user/sequencestitch/pkg/pipeline"
)

var timestampPattern = regexp.MustCompile(`(\d+):(\d{2}):(\d{2})\.(\d+)`)

// ParseTimestamp extracts the first H:MM:SS.frac timestamp in line.
func ParseTimestamp(line string) (time.Duration, bool) {
	m := timestampPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	frac, err := strconv.ParseFloat("0."+m[4], 64)
	if err != nil {
		return 0, false
	}

	d := time.Duration(h)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(frac*float64(time.Second))
	return d, true
}

// Measured converts ffmpeg -progress output into a fraction of a known
// total duration.
type Measured struct {
	Total  time.Duration
	Report pipeline.ProgressFunc
}

// Observe handles one line of progress output. Lines without a timestamp
// are ignored, as is everything when the total is unknown.
func (m Measured) Observe(line string) {
	if m.Total <= 0 || m.Report == nil {
		return
	}
	d, ok := ParseTimestamp(line)
	if !ok {
		return
	}
	m.Report(clamp(float64(d) / float64(m.Total)))
}
