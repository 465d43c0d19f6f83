package exchanges

import (
	"fmt"
	"strings"
)

// Segment define one registry listing page
type Segment struct {
	Name   string
	URL    string
	Suffix string // yahoo ticker suffix
}

var (
	_segments = map[string]Segment{}
	_names    []string
)

// Register register segment
func Register(s Segment) {
	if _, found := _segments[s.Name]; !found {
		_names = append(_names, s.Name)
	}
	_segments[s.Name] = s
}

// Get get segment by name
func Get(name string) (Segment, bool) {
	segment, found := _segments[name]
	return segment, found
}

// All return all segments in register order
func All() []Segment {
	segments := make([]Segment, 0, len(_names))
	for _, name := range _names {
		segments = append(segments, _segments[name])
	}

	return segments
}

// Parse parse command argument, eg: listed,otc. Empty argument means all segments
func Parse(arg string) ([]Segment, error) {
	if strings.TrimSpace(arg) == "" {
		return All(), nil
	}

	parts := strings.Split(arg, ",")
	segments := make([]Segment, 0, len(parts))
	for _, name := range parts {
		segment, found := Get(strings.TrimSpace(name))
		if !found {
			return nil, fmt.Errorf("invalid segment: %s", name)
		}

		segments = append(segments, segment)
	}

	return segments, nil
}
