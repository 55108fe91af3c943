package benchmark

import "time"

// Dataset is the root object published as window.BENCHMARK_DATA.
type Dataset struct {
	LastUpdate int64  `json:"lastUpdate"`
	RepoURL    string `json:"repoUrl"`
	Entries    Suites `json:"entries"`
}

// Entry holds one CI run's results.
type Entry struct {
	Commit  Commit  `json:"commit"`
	Date    int64   `json:"date"` // ms since epoch, set when the entry is appended
	Tool    Tool    `json:"tool"`
	Benches []Bench `json:"benches"`
}

// Commit mirrors the head commit of the push that produced an entry.
type Commit struct {
	Author    User   `json:"author"`
	Committer User   `json:"committer"`
	Distinct  bool   `json:"distinct"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	TreeID    string `json:"tree_id"`
	URL       string `json:"url"`
}

// User is a commit author or committer.
type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Bench is a single measurement within an entry.
type Bench struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Range string  `json:"range,omitempty"`
	Extra string  `json:"extra,omitempty"`
}

// Point is one value of a bench over time.
type Point struct {
	Date     int64   `json:"date"`
	CommitID string  `json:"commit"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
}

// Time returns the append time of the entry.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Date)
}

// Bench looks up a measurement by name.
func (e Entry) Bench(name string) (Bench, bool) {
	for _, b := range e.Benches {
		if b.Name == name {
			return b, true
		}
	}
	return Bench{}, false
}

// ShortID returns the first seven characters of the commit hash.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i, r := range c.Message {
		if r == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
