package models

// Subject represents a study discipline with its list of topics.
type Subject struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Topics    []string `json:"topics"`
	IsCustom  bool     `json:"isCustom"`
}

// Validate reports whether a persisted subject record is well formed.
// Malformed records are quarantined on read instead of propagated.
func (s Subject) Validate() error {
	if s.ID <= 0 {
		return errFieldf("subject id must be positive, got %d", s.ID)
	}
	if s.Name == "" {
		return errFieldf("subject name is required")
	}
	if len(s.Topics) == 0 {
		return errFieldf("subject %q has no topics", s.Name)
	}
	return nil
}
