package model

// BatchStats holds the counters collected while processing a batch.
type BatchStats struct {
	ByVendor        map[string]int
	vendorOrder     []string
	Total           int
	Classified      int
	Excluded        int
	Unclassified    int
	Unsupported     int
	ArchiveFailures int
}

// NewBatchStats creates stats with a zero counter for every known vendor.
func NewBatchStats(vendors []string) *BatchStats {
	s := &BatchStats{
		ByVendor:    make(map[string]int, len(vendors)),
		vendorOrder: make([]string, 0, len(vendors)),
	}
	for _, v := range vendors {
		if _, ok := s.ByVendor[v]; ok {
			continue
		}
		s.ByVendor[v] = 0
		s.vendorOrder = append(s.vendorOrder, v)
	}
	return s
}

// Add counts one processed record.
func (s *BatchStats) Add(rec Record) {
	if s.ByVendor == nil {
		s.ByVendor = make(map[string]int)
	}

	s.Total++
	switch rec.Kind {
	case KindClassified:
		s.Classified++
		if rec.Vendor != "" {
			if _, ok := s.ByVendor[rec.Vendor]; !ok {
				s.vendorOrder = append(s.vendorOrder, rec.Vendor)
			}
			s.ByVendor[rec.Vendor]++
		}
	case KindExcluded:
		s.Excluded++
	case KindUnclassified:
		s.Unclassified++
	case KindUnsupported:
		s.Unsupported++
	}
}

// Count returns the counter for a kind.
func (s *BatchStats) Count(k Kind) int {
	switch k {
	case KindClassified:
		return s.Classified
	case KindExcluded:
		return s.Excluded
	case KindUnclassified:
		return s.Unclassified
	case KindUnsupported:
		return s.Unsupported
	}
	return 0
}

// Vendors returns vendor names in configuration order, followed by any
// vendor first seen while counting.
func (s *BatchStats) Vendors() []string {
	out := make([]string, len(s.vendorOrder))
	copy(out, s.vendorOrder)
	return out
}

// Balanced reports whether every counted file landed in exactly one kind.
func (s *BatchStats) Balanced() bool {
	return s.Total == s.Classified+s.Excluded+s.Unclassified+s.Unsupported
}
