package health

import "strings"

// probe is one named way of detecting a capability.
type probe struct {
	name string
	ok   func(repoView) bool
}

// alternatives is an ordered, exclusive group of probes: the first probe that
// matches wins and later probes are not evaluated, so one capability is only
// credited once.
type alternatives []probe

// first returns the name of the highest-priority matching probe.
func (a alternatives) first(r repoView) (string, bool) {
	for _, p := range a {
		if p.ok(r) {
			return p.name, true
		}
	}
	return "", false
}

// signal awards points when any alternative matches and records finding
// otherwise. An empty finding marks an optional bonus.
type signal struct {
	points  int
	detect  alternatives
	finding string
}

func anyFile(names ...string) probe {
	return probe{
		name: "file:" + strings.Join(names, "|"),
		ok:   func(r repoView) bool { return r.AnyExists(names...) },
	}
}

func dir(parts ...string) probe {
	return probe{
		name: "dir:" + strings.Join(parts, "/"),
		ok:   func(r repoView) bool { return r.IsDir(parts...) },
	}
}

// manifestSection matches when manifest is readable UTF-8 containing any of
// the given section markers.
func manifestSection(manifest string, sections ...string) probe {
	return probe{
		name: manifest + ":" + strings.Join(sections, "|"),
		ok: func(r repoView) bool {
			content, ok := r.readStrict(manifest)
			return ok && containsAny(content, sections...)
		},
	}
}

// tally accumulates one category's points and findings. It lives only for
// the duration of a single category scorer.
type tally struct {
	score    int
	findings []string
}

func (t *tally) award(points int) {
	t.score += points
}

func (t *tally) note(finding string) {
	t.findings = append(t.findings, finding)
}

// apply evaluates s against r.
func (t *tally) apply(r repoView, s signal) bool {
	if _, ok := s.detect.first(r); ok {
		t.award(s.points)
		return true
	}
	if s.finding != "" {
		t.note(s.finding)
	}
	return false
}

func containsAny(content string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(content, n) {
			return true
		}
	}
	return false
}
