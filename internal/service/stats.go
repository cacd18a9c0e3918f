package service

// Stats summarizes the session's store
type Stats struct {
	BaseName            string
	Entries             int
	Capacity            int
	Translations        int
	TranslationCapacity int
	Dirty               bool
}

// Stats returns counts and limits of the current store
func (s *VocabularyService) Stats() Stats {
	stats := Stats{
		BaseName:            s.baseName,
		Entries:             s.store.Count(),
		Capacity:            s.store.Capacity(),
		TranslationCapacity: s.store.TranslationCapacity(),
		Dirty:               s.dirty,
	}
	for _, entry := range s.store.Entries() {
		stats.Translations += len(entry.Translations)
	}
	return stats
}

// Free returns how many entries can still be added
func (st Stats) Free() int {
	if st.Entries >= st.Capacity {
		return 0
	}
	return st.Capacity - st.Entries
}
