// Package manifest handles proxygen.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/interpose/proxygen"
)

// FileName is the name of the manifest file.
const FileName = "proxygen.toml"

// Manifest represents a proxygen.toml configuration.
type Manifest struct {
	Generate Generate `toml:"generate"`
	Proxies  []Proxy  `toml:"proxy"`

	// Dir is the directory containing the proxygen.toml file (set at load time).
	Dir string `toml:"-"`
}

// Generate configures a generation run.
type Generate struct {
	Concurrency int      `toml:"concurrency"`
	Watch       []string `toml:"watch"` // extra directories watched by proxygen watch
}

// Proxy is one [[proxy]] entry: a shell to generate.
type Proxy struct {
	Package    string   `toml:"package"`
	Base       string   `toml:"base"`
	Name       string   `toml:"name"`
	Interfaces []string `toml:"interfaces"`
	Output     string   `toml:"output"`
}

// Load parses a proxygen.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	for i, p := range m.Proxies {
		if p.Package == "" || p.Base == "" {
			return nil, fmt.Errorf("%s: proxy entry %d needs package and base", path, i+1)
		}
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a proxygen.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Requests converts the proxy entries into generator requests resolved from
// the manifest directory.
func (m *Manifest) Requests() []proxygen.Request {
	reqs := make([]proxygen.Request, 0, len(m.Proxies))
	for _, p := range m.Proxies {
		reqs = append(reqs, proxygen.Request{
			Package:    p.Package,
			Base:       p.Base,
			Name:       p.Name,
			Interfaces: p.Interfaces,
			Output:     p.Output,
			Dir:        m.Dir,
		})
	}
	return reqs
}

// WatchDirs returns absolute paths of the extra directories to watch.
func (m *Manifest) WatchDirs() []string {
	var paths []string
	for _, d := range m.Generate.Watch {
		if filepath.IsAbs(d) {
			paths = append(paths, d)
			continue
		}
		paths = append(paths, filepath.Join(m.Dir, d))
	}
	return paths
}
