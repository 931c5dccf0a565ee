// Package load reads repository descriptors: the declarations of finder
// methods that code generation turns into implementations.
//
// A descriptor is YAML (and therefore also JSON):
//
//	package: org.example
//	repositories:
//	  - name: PersonRepository
//	    jakarta_data: true
//	    session:
//	      type: jakarta.persistence.EntityManager
//	    finders:
//	      - name: findByNameAndAge
//	        kind: criteria
//	        entity: org.example.Person
//	        params:
//	          - {name: name, type: String}
//	          - {name: age, type: int}
package load

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"
)

// DefaultSessionType is the session type of repositories that do not name one.
const DefaultSessionType = "jakarta.persistence.EntityManager"

// File is a loaded descriptor file.
type File struct {
	Path         string        `yaml:"-"`
	Package      string        `yaml:"package"`
	Repositories []*Repository `yaml:"repositories"`
}

// Repository declares a repository interface or, when Static is set, a holder
// of static finder helpers.
type Repository struct {
	Name    string `yaml:"name"`
	Package string `yaml:"package,omitempty"`
	// Static generates static helpers taking the session as a parameter
	// instead of implementing a repository interface.
	Static bool `yaml:"static,omitempty"`
	// JakartaData translates persistence exceptions to data exceptions.
	JakartaData bool      `yaml:"jakarta_data,omitempty"`
	Session     Session   `yaml:"session,omitempty"`
	Finders     []*Finder `yaml:"finders"`
}

// Session describes the session handle of a repository.
type Session struct {
	Type string `yaml:"type,omitempty"`
	Name string `yaml:"name,omitempty"`
}

// Finder declares one finder method.
type Finder struct {
	Name          string     `yaml:"name"`
	Kind          string     `yaml:"kind,omitempty"`
	Entity        string     `yaml:"entity"`
	Single        bool       `yaml:"single,omitempty"`
	Params        []*Param   `yaml:"params,omitempty"`
	FetchProfiles []string   `yaml:"fetch_profiles,omitempty"`
	OrderBy       []*OrderBy `yaml:"order_by,omitempty"`
}

// Param is a declared finder parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// OrderBy is a static ordering of a finder.
type OrderBy struct {
	Path       string `yaml:"path"`
	Desc       bool   `yaml:"desc,omitempty"`
	IgnoreCase bool   `yaml:"ignore_case,omitempty"`
}

// Load reads and validates the descriptor at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes and validates a descriptor. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	f.defaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// defaults fills in omitted session and kind settings.
func (f *File) defaults() {
	for _, r := range f.Repositories {
		if r == nil {
			continue
		}
		if r.Package == "" {
			r.Package = f.Package
		}
		if r.Session.Type == "" {
			r.Session.Type = DefaultSessionType
		}
		if r.Session.Name == "" {
			r.Session.Name = DefaultSessionName(r.Session.Type)
		}
		for _, fd := range r.Finders {
			if fd != nil && fd.Kind == "" {
				fd.Kind = "criteria"
			}
		}
	}
}

// Validate checks the structure of the descriptor. Semantic checks of each
// finder happen during generation.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, r := range f.Repositories {
		if r == nil || r.Name == "" {
			errs = append(errs, fmt.Errorf("repository %d: missing name", i))
			continue
		}
		qualified := r.QualifiedName()
		if seen[qualified] {
			errs = append(errs, fmt.Errorf("repository %s: declared twice", qualified))
		}
		seen[qualified] = true
		for j, fd := range r.Finders {
			switch {
			case fd == nil || fd.Name == "":
				errs = append(errs, fmt.Errorf("repository %s: finder %d: missing name", r.Name, j))
			case fd.Entity == "":
				errs = append(errs, fmt.Errorf("repository %s: finder %s: missing entity", r.Name, fd.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// QualifiedName returns the fully-qualified name of the repository.
func (r *Repository) QualifiedName() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// DefaultSessionName derives the session field name from its type:
// "jakarta.persistence.EntityManager" is held in "entityManager".
func DefaultSessionName(typ string) string {
	if i := strings.LastIndexByte(typ, '.'); i >= 0 {
		typ = typ[i+1:]
	}
	if typ == "" {
		return "session"
	}
	return inflect.CamelizeDownFirst(typ)
}
