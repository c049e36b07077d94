package compiler

// env binds macro parameters to helper rule names.
// It is immutable: binding creates a new env that falls back to its parent.
type env struct {
	parent      *env
	name, value string
}

func (e *env) bind(name, value string) *env {
	return &env{e, name, value}
}

func (e *env) lookup(name string) (string, bool) {
	for c := e; c != nil; c = c.parent {
		if c.name == name {
			return c.value, true
		}
	}
	return "", false
}
