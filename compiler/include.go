package compiler

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/ava12/earley/ast"
	"github.com/ava12/earley/langdef"
)

// filePath returns absolute path of included file.
func filePath(base, name string) (string, error) {
	if !filepath.IsAbs(name) && base != "" {
		name = filepath.Join(filepath.Dir(base), name)
	}
	return filepath.Abs(name)
}

func (c *Compiler) include(inc ast.Include) error {
	var (
		key     string
		content []byte
		e       error
	)

	if inc.Builtin {
		name := path.Clean(inc.Path)
		key = "builtin:" + name
		if c.session.compiled[key] {
			return nil
		}
		content, e = fs.ReadFile(c.opts.Builtins, name)
	} else {
		key, e = filePath(c.opts.Path, inc.Path)
		if e != nil {
			return includeError(inc.Path, e)
		}
		if c.session.compiled[key] {
			return nil
		}
		content, e = c.opts.ReadFile(key)
	}
	if e != nil {
		return includeError(inc.Path, e)
	}
	c.session.compiled[key] = true

	g, e := langdef.ParseBytes(key, content)
	if e != nil {
		return e
	}

	opts := c.opts
	if !inc.Builtin {
		opts.Path = key
	}
	ic, e := compile(g, opts, c.session)
	if e != nil {
		return e
	}

	c.merge(ic)
	return nil
}
