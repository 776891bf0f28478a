package pyspy

// Entry is one key of a finished tally with its accumulated sample count.
type Entry struct {
	Key     string
	Samples int
}

// tally is a counter keyed by string that remembers key insertion order, so
// downstream sorting can break ties deterministically regardless of map
// iteration order.
type tally struct {
	samples map[string]int
	order   []string
}

func newTally() *tally {
	return &tally{samples: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, seen := t.samples[key]; !seen {
		t.order = append(t.order, key)
	}
	t.samples[key] += n
}

func (t *tally) entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, Entry{Key: key, Samples: t.samples[key]})
	}
	return out
}
