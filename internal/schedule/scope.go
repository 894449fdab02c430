package schedule

// Scope collects everything acquired during a setup step so teardown is a
// single Release call.
type Scope struct {
	releases []func()
}

// Add registers a release func. Nil funcs are ignored.
func (s *Scope) Add(release func()) {
	if release == nil {
		return
	}
	s.releases = append(s.releases, release)
}

// Hold registers h and returns it unchanged.
func (s *Scope) Hold(h Handle) Handle {
	s.Add(h.Cancel)
	return h
}

// Len is the number of releases not yet run.
func (s *Scope) Len() int {
	return len(s.releases)
}

// Release runs every registered release in reverse order and empties the
// scope, which may then be reused.
func (s *Scope) Release() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
