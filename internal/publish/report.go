package publish

type Kind string

const (
	KindFolder     Kind = "folders"
	KindPage       Kind = "pages"
	KindLayer      Kind = "layers"
	KindCollection Kind = "collections"
	KindField      Kind = "fields"
	KindItem       Kind = "items"
	KindValue      Kind = "values"
)

// Counts tracks what happened to one entity kind during a publish run.
type Counts struct {
	Created   int
	Updated   int
	Unchanged int
}

// Result reports the outcome of publishing a single root.
type Result struct {
	RootID  string
	Success bool
	Counts  map[Kind]*Counts
	Errors  []string
}

func newResult(rootID string) *Result {
	return &Result{
		RootID:  rootID,
		Success: true,
		Counts:  make(map[Kind]*Counts),
	}
}

// Count returns the counts recorded for a kind, zero values included.
func (r *Result) Count(kind Kind) Counts {
	if c, ok := r.Counts[kind]; ok {
		return *c
	}
	return Counts{}
}

func (r *Result) fail(err error) {
	r.Success = false
	r.Errors = append(r.Errors, err.Error())
}

func (r *Result) merge(counts countSet) {
	for kind, c := range counts {
		have, ok := r.Counts[kind]
		if !ok {
			have = &Counts{}
			r.Counts[kind] = have
		}
		have.Created += c.Created
		have.Updated += c.Updated
		have.Unchanged += c.Unchanged
	}
}

// BatchResult aggregates the results of publishing multiple roots.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []*Result
}

// countSet collects per kind counts while a publish plan is built.
type countSet map[Kind]*Counts

func (s countSet) at(kind Kind) *Counts {
	c, ok := s[kind]
	if !ok {
		c = &Counts{}
		s[kind] = c
	}
	return c
}

// pending is the number of rows the plan would create or update.
func (s countSet) pending() int {
	n := 0
	for _, c := range s {
		n += c.Created + c.Updated
	}
	return n
}
