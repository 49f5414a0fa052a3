// Package domain defines the entity linkage types
package domain

// Group is one shared-key finding: the distinct lines tied to one device,
// folded name or national identifier
type Group struct {
	Key           string   `json:"key"`
	Label         string   `json:"label,omitempty"`
	DistinctCount int      `json:"distinct_count"`
	Numbers       []string `json:"numbers"`
	TotalCount    int      `json:"total_count"`
}

// Report is the outcome of one linkage pass over a project
type Report struct {
	Project string  `json:"project"`
	Version int64   `json:"version"`
	Pass    string  `json:"pass"`
	Groups  []Group `json:"groups"`
}
