package syntax

import "sort"

// Capture is one match of a highlight query against a document, in host
// document byte coordinates regardless of whether it came from the host
// grammar or an injected one.
type Capture struct {
	StartByte uint32
	EndByte   uint32
	Name      string
}

// injectionRegion is a byte range in host coordinates whose content is
// parsed and highlighted by a different grammar.
type injectionRegion struct {
	StartByte uint32
	EndByte   uint32
	Language  string
}

func sortCaptures(c []Capture) {
	sort.Slice(c, func(i, j int) bool { return c[i].StartByte < c[j].StartByte })
}

func sortInjectionRegions(r []injectionRegion) {
	sort.Slice(r, func(i, j int) bool { return r[i].StartByte < r[j].StartByte })
}

// regionContaining returns the injection region containing byte position p,
// or nil if p falls outside every region.
func regionContaining(regions []injectionRegion, p uint32) *injectionRegion {
	for i := range regions {
		if regions[i].StartByte <= p && p < regions[i].EndByte {
			return &regions[i]
		}
	}
	return nil
}
