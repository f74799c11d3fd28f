package soundtrack

import (
	"fmt"
	"strings"

	cfg "github.com/automoto/doomerang-soundtrack/config"
)

// Segment is a discrete soundtrack category matching a gameplay mood.
type Segment int

const (
	// SegmentNone means no segment has been reached yet.
	SegmentNone Segment = iota
	SegmentAmbient
	SegmentExploration
	SegmentBossBattle
)

var segmentNames = map[Segment]string{
	SegmentNone:        "none",
	SegmentAmbient:     cfg.SegmentAmbient,
	SegmentExploration: cfg.SegmentExploration,
	SegmentBossBattle:  cfg.SegmentBossBattle,
}

func (s Segment) String() string {
	if name, ok := segmentNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Segment(%d)", int(s))
}

// ParseSegment maps a configured segment name to a Segment, ignoring case.
func ParseSegment(name string) (Segment, error) {
	name = strings.TrimSpace(name)
	for s, n := range segmentNames {
		if s != SegmentNone && strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return SegmentNone, fmt.Errorf("unknown segment %q", name)
}

// Segments lists every playable segment in declaration order.
func Segments() []Segment {
	return []Segment{SegmentAmbient, SegmentExploration, SegmentBossBattle}
}
