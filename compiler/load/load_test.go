package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptor = `
package: org.example
repositories:
  - name: PersonRepository
    jakarta_data: true
    finders:
      - name: findByNameAndAge
        entity: org.example.Person
        single: true
        params:
          - {name: name, type: String}
          - {name: age, type: int}
        order_by:
          - {path: name, desc: true, ignore_case: true}
      - name: findById
        kind: id
        entity: Person
        fetch_profiles: [withAddress]
        params:
          - {name: id, type: long}
  - name: Queries
    package: org.example.queries
    static: true
    session:
      type: org.hibernate.reactive.mutiny.Mutiny.Session
      name: mutiny
    finders: []
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(descriptor))
	require.NoError(t, err)
	require.Len(t, f.Repositories, 2)

	r := f.Repositories[0]
	assert.Equal(t, "org.example", r.Package)
	assert.Equal(t, "org.example.PersonRepository", r.QualifiedName())
	assert.True(t, r.JakartaData)
	assert.False(t, r.Static)
	assert.Equal(t, Session{Type: DefaultSessionType, Name: "entityManager"}, r.Session)

	require.Len(t, r.Finders, 2)
	fd := r.Finders[0]
	assert.Equal(t, "criteria", fd.Kind)
	assert.True(t, fd.Single)
	assert.Equal(t, []*Param{{Name: "name", Type: "String"}, {Name: "age", Type: "int"}}, fd.Params)
	assert.Equal(t, []*OrderBy{{Path: "name", Desc: true, IgnoreCase: true}}, fd.OrderBy)

	fd = r.Finders[1]
	assert.Equal(t, "id", fd.Kind)
	assert.Equal(t, []string{"withAddress"}, fd.FetchProfiles)

	q := f.Repositories[1]
	assert.Equal(t, "org.example.queries.Queries", q.QualifiedName())
	assert.True(t, q.Static)
	assert.Equal(t, "mutiny", q.Session.Name)
	assert.Empty(t, q.Finders)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "unknown key",
			data: "repositories:\n  - name: R\n    finder: []\n",
			want: []string{"decode descriptor", "finder"},
		},
		{
			name: "malformed yaml",
			data: "repositories: [",
			want: []string{"decode descriptor"},
		},
		{
			name: "missing repository name",
			data: "repositories:\n  - finders: []\n",
			want: []string{"repository 0: missing name"},
		},
		{
			name: "duplicate repository",
			data: "package: p\nrepositories:\n  - name: R\n  - name: R\n",
			want: []string{"repository p.R: declared twice"},
		},
		{
			name: "several finder errors",
			data: "repositories:\n  - name: R\n    finders:\n      - entity: E\n      - name: f\n",
			want: []string{"finder 0: missing name", "finder f: missing entity"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findergen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(descriptor), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultSessionName(t *testing.T) {
	tests := map[string]string{
		"jakarta.persistence.EntityManager":             "entityManager",
		"org.hibernate.StatelessSession":                "statelessSession",
		"org.hibernate.reactive.mutiny.Mutiny.Session": "session",
		"Session": "session",
		"":        "session",
	}
	for typ, want := range tests {
		assert.Equal(t, want, DefaultSessionName(typ), typ)
	}
}
