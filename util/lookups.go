package util

import (
	"cmp"
	"encoding/json"
	"slices"
)

type (
	DigestEntry struct {
		Name   string `json:"name"`   // path of the file as reported by the walk
		Digest string `json:"digest"` // lowercase hex digest of the content
		Size   int64  `json:"size"`   // number of bytes hashed
	}
	DigestTable struct {
		entries []DigestEntry
		sorted  bool
	}
)

// MarshalJSON encodes the entries in their current order together with the
// table totals.
func (e DigestTable) MarshalJSON() ([]byte, error) {
	entries := e.entries
	if entries == nil {
		entries = []DigestEntry{}
	}
	return json.Marshal(struct {
		Entries       []DigestEntry `json:"entries"`
		Files         int           `json:"files"`
		UniqueContent int           `json:"unique_content"`
		TotalSize     int64         `json:"total_size"`
		RedundantSize int64         `json:"redundant_size"`
	}{
		Entries:       entries,
		Files:         e.GetTotalFileCount(),
		UniqueContent: e.GetUniqueContentCount(),
		TotalSize:     e.GetTotalSize(),
		RedundantSize: e.GetRedundantSize(),
	})
}

func (e DigestTable) Iterate(yield func(DigestEntry) bool) {
	for _, entry := range e.entries {
		if !yield(entry) {
			return
		}
	}
}

func (e *DigestTable) Add(de DigestEntry) {
	e.sorted = false
	e.entries = append(e.entries, de)
}

func (e DigestTable) Len() int {
	return len(e.entries)
}

// Sort orders entries by digest, then by name, so identical content is adjacent.
func (e *DigestTable) Sort() {
	slices.SortFunc(e.entries, func(a, b DigestEntry) int {
		if c := cmp.Compare(a.Digest, b.Digest); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	e.sorted = true
}

// Duplicates returns every group of two or more entries sharing a digest.
// Groups are ordered by digest and entries within a group by name.
func (e *DigestTable) Duplicates() [][]DigestEntry {
	if !e.sorted {
		e.Sort()
	}
	var groups [][]DigestEntry
	for start := 0; start < len(e.entries); {
		end := start + 1
		for end < len(e.entries) && e.entries[end].Digest == e.entries[start].Digest {
			end++
		}
		if end-start > 1 {
			groups = append(groups, slices.Clone(e.entries[start:end]))
		}
		start = end
	}
	return groups
}

// GetTotalFileCount returns the number of name-unique files in the table
func (e DigestTable) GetTotalFileCount() int {
	files := make(map[string]bool)
	for de := range e.Iterate {
		files[de.Name] = true
	}
	return len(files)
}

// GetUniqueContentCount returns the number of content-unique files in the table
func (e DigestTable) GetUniqueContentCount() int {
	digests := make(map[string]bool)
	for de := range e.Iterate {
		digests[de.Digest] = true
	}
	return len(digests)
}

// GetTotalSize returns the bytes hashed across every entry.
func (e DigestTable) GetTotalSize() int64 {
	var total int64
	for de := range e.Iterate {
		total += de.Size
	}
	return total
}

// GetRedundantSize returns the bytes that would be reclaimed by keeping a
// single copy of each distinct content.
func (e DigestTable) GetRedundantSize() int64 {
	seen := make(map[string]bool)
	var redundant int64
	for de := range e.Iterate {
		if seen[de.Digest] {
			redundant += de.Size
			continue
		}
		seen[de.Digest] = true
	}
	return redundant
}
