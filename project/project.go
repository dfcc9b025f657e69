// Package project manages .aero project bundles: one directory per project
// holding a small JSON descriptor, collected under a projects root
// (~/AeroProjects by default).
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

// BundleName is the descriptor file inside each project directory
const BundleName = "project.aero"

const timeLayout = "2006-01-02 15:04:05"

// Info is the JSON payload of a bundle
type Info struct {
	Name        string `json:"name"`
	CreatedDate string `json:"created_date"`
	LastOpened  string `json:"last_opened"`
}

// Project is a bundle on disk
type Project struct {
	Info
	Path string // project directory
}

// DefaultDir resolves the projects root under the user's home directory
func DefaultDir() (dir string, err error) {
	var home string
	if home, err = homedir.Dir(); err != nil {
		return "", fmt.Errorf("unable to resolve home directory: %w", err)
	}
	dir = filepath.Join(home, "AeroProjects")
	return
}

// Create makes a new project directory under root and writes its bundle
func Create(root, name string) (p *Project, err error) {
	if name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	var (
		path = filepath.Join(root, name)
		now  = time.Now().Format(timeLayout)
	)
	if err = os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create project directory: %w", err)
	}
	p = &Project{
		Info: Info{Name: name, CreatedDate: now, LastOpened: now},
		Path: path,
	}
	if err = p.save(); err != nil {
		return nil, err
	}
	return
}

// Open reads the bundle in the given project directory and stamps its
// last-opened time
func Open(path string) (p *Project, err error) {
	var (
		data []byte
		file = filepath.Join(path, BundleName)
	)
	if data, err = os.ReadFile(file); err != nil {
		return nil, fmt.Errorf("project file not found: %w", err)
	}
	p = &Project{Path: path}
	if err = json.Unmarshal(data, &p.Info); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", file, err)
	}
	p.LastOpened = time.Now().Format(timeLayout)
	if err = p.save(); err != nil {
		return nil, err
	}
	return
}

// List walks the projects root and returns every readable bundle, most
// recently opened first. Unreadable or malformed bundles are skipped, not
// fatal - a stale entry should not block the listing.
func List(root string) (projects []*Project, err error) {
	// Walk errors (including a projects root that does not exist yet) are
	// swallowed: no readable bundles just means an empty listing
	_ = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() || info.Name() != BundleName {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		p := &Project{Path: filepath.Dir(path)}
		if json.Unmarshal(data, &p.Info) != nil {
			return nil
		}
		projects = append(projects, p)
		return nil
	})
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastOpened > projects[j].LastOpened
	})
	return
}

// Remove deletes the bundle file, dropping the project from listings while
// keeping the rest of its files
func (p *Project) Remove() (err error) {
	if err = os.Remove(filepath.Join(p.Path, BundleName)); err != nil {
		return fmt.Errorf("unable to remove project bundle: %w", err)
	}
	return
}

func (p *Project) save() (err error) {
	var data []byte
	if data, err = json.MarshalIndent(&p.Info, "", "    "); err != nil {
		return
	}
	if err = os.WriteFile(filepath.Join(p.Path, BundleName), data, 0o644); err != nil {
		return fmt.Errorf("unable to write project bundle: %w", err)
	}
	return
}
