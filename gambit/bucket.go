package gambit

import "fmt"

// Bucket is the coarse urgency tier of a rule. Evaluation cascades:
// the first bucket that yields any scored candidate wins outright and
// lower buckets are never visited that cycle.
type Bucket int

const (
	BucketCritical Bucket = iota // survival: someone is about to die
	BucketHigh                   // strong openings: executes, interrupts
	BucketStandard               // bread-and-butter rotation
	BucketLow                    // filler when nothing else applies
)

var bucketNames = map[Bucket]string{
	BucketCritical: "CRITICAL",
	BucketHigh:     "HIGH",
	BucketStandard: "STANDARD",
	BucketLow:      "LOW",
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// ParseBucket maps the data-file spelling to a Bucket.
func ParseBucket(s string) (Bucket, error) {
	for b, name := range bucketNames {
		if name == s {
			return b, nil
		}
	}
	return BucketLow, fmt.Errorf("unknown bucket %q", s)
}

// Buckets lists the tiers in cascade order.
var Buckets = []Bucket{BucketCritical, BucketHigh, BucketStandard, BucketLow}
