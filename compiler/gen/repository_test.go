package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/wsous/hibernate-orm-fork/compiler/load"
)

// TestGolden generates the units of testdata/*.txtar. Each archive holds a
// descriptor.yaml and one file per expected unit, named by its path.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var descriptor []byte
			want := make(map[string]string)
			for _, f := range ar.Files {
				if f.Name == "descriptor.yaml" {
					descriptor = f.Data
					continue
				}
				want[f.Name] = string(f.Data)
			}
			require.NotNil(t, descriptor, "missing descriptor.yaml")

			lf, err := load.Parse(descriptor)
			require.NoError(t, err)
			repos, err := NewRepositories(lf)
			require.NoError(t, err)
			require.Len(t, repos, len(want))

			for _, r := range repos {
				u := GenerateUnit(&Config{}, r)
				require.Empty(t, u.Failures)
				path := filepath.ToSlash(u.Path())
				require.Contains(t, want, path)
				assert.Equal(t, want[path], string(u.Source))
			}
		})
	}
}

func personRepository(finders ...*FinderSpec) *Repository {
	return &Repository{
		Package: "org.example",
		Name:    "PersonRepository",
		Session: load.Session{Type: TypeSession, Name: "session"},
		Finders: finders,
	}
}

func TestGenerateUnit(t *testing.T) {
	t.Run("failing finders are isolated", func(t *testing.T) {
		r := personRepository(
			personFinder(KindID, "findById", "id", "long"),
			personFinder(KindID, "findByTwo", "a", "long", "b", "long"),
			personFinder(KindCriteria, "findByName", "name", "String"),
		)
		u := GenerateUnit(&Config{}, r)

		require.Len(t, u.Failures, 1)
		assert.True(t, IsGenerationError(u.Failures[0]))
		assert.True(t, IsFinderError(u.Failures[0]))
		assert.Contains(t, u.Failures[0].Error(), "findByTwo")

		require.Len(t, u.Methods, 2)
		assert.Equal(t, "findById", u.Methods[0].Name)
		assert.Equal(t, "findByName", u.Methods[1].Name)
		src := string(u.Source)
		assert.Contains(t, src, "public Person findById(long id) {")
		assert.Contains(t, src, "public List<Person> findByName(String name) {")
		assert.NotContains(t, src, "findByTwo")
	})

	t.Run("colliding constants reject the later finder", func(t *testing.T) {
		r := personRepository(
			personFinder(KindCriteria, "findByName", "name", "String"),
			personFinder(KindCriteria, "find_by_name", "name", "String"),
		)
		u := GenerateUnit(&Config{}, r)

		require.Len(t, u.Failures, 1)
		assert.True(t, IsCollisionError(u.Failures[0]))
		assert.Contains(t, u.Failures[0].Error(), "FIND_BY_NAME_BY_NAME")
		require.Len(t, u.Methods, 1)
		assert.Equal(t, "findByName", u.Methods[0].Name)
		assert.Equal(t, 1, strings.Count(string(u.Source), "FIND_BY_NAME_BY_NAME ="))
	})

	t.Run("parameterless finder keeps its own constant", func(t *testing.T) {
		r := personRepository(
			personFinder(KindCriteria, "findByName"),
			personFinder(KindCriteria, "find", "name", "String"),
		)
		u := GenerateUnit(&Config{}, r)

		require.Empty(t, u.Failures)
		require.Len(t, u.Methods, 2)
		assert.Equal(t, "FIND_BY_NAME_BY_", u.Methods[0].Constant)
		assert.Equal(t, "FIND_BY_NAME", u.Methods[1].Constant)
		src := string(u.Source)
		assert.Contains(t, src, "public List<Person> findByName() {")
		assert.Contains(t, src, "public List<Person> find(String name) {")
	})

	t.Run("method text does not depend on finder order", func(t *testing.T) {
		sorted := func() *FinderSpec {
			return personFinder(KindCriteria, "findSorted",
				"name", "String",
				"order", "java.util.List<org.hibernate.query.Order<? super org.example.Person>>")
		}
		bySale := func() *FinderSpec {
			return personFinder(KindCriteria, "findBySale", "sale", "org.example.sales.Order")
		}
		first := GenerateUnit(&Config{}, personRepository(sorted(), bySale()))
		second := GenerateUnit(&Config{}, personRepository(bySale(), sorted()))
		require.Empty(t, first.Failures)
		require.Empty(t, second.Failures)

		texts := make(map[string]string)
		for _, m := range first.Methods {
			texts[m.Name] = m.Text
		}
		for _, m := range second.Methods {
			assert.Equal(t, texts[m.Name], m.Text, m.Name)
		}
		assert.Contains(t, texts["findBySale"], "{@link Person#sale sale}")
		assert.Contains(t, texts["findBySale"], "findBySale(Order sale)")
		assert.Contains(t, texts["findSorted"], "List<org.hibernate.query.Order<? super Person>> order")
		assert.Contains(t, string(first.Source), "import org.example.sales.Order;\n")
		assert.NotContains(t, string(first.Source), "import org.hibernate.query.Order;")
	})

	t.Run("features", func(t *testing.T) {
		r := personRepository(personFinder(KindID, "findById", "id", "long"))
		cfg := &Config{Features: []Feature{FeatureNonnull, FeatureDataExceptions}}
		u := GenerateUnit(cfg, r)

		src := string(u.Source)
		assert.Contains(t, src, "public @Nonnull Person findById(long id) {")
		assert.Contains(t, src, "catch (PersistenceException exception) {")
		assert.Contains(t, src, "import jakarta.annotation.Nonnull;")
		assert.False(t, r.Finders[0].Nonnull, "features must not change the declaration")
	})

	t.Run("header", func(t *testing.T) {
		u := GenerateUnit(&Config{Header: "// generated\n// do not edit"}, personRepository())

		assert.True(t, strings.HasPrefix(string(u.Source), "// generated\n// do not edit\npackage org.example;\n"))
		assert.Contains(t, string(u.Source), "\tprotected final Session session;\n")
		assert.Empty(t, u.Methods)
	})
}

func TestRepositoryPaths(t *testing.T) {
	r := &Repository{Package: "org.example.data", Name: "Library"}
	assert.Equal(t, "org.example.data.Library", r.QualifiedName())
	assert.Equal(t, "Library_", r.UnitName())
	assert.Equal(t, filepath.Join("org", "example", "data", "Library_.java"), r.Path())

	r = &Repository{Name: "Library"}
	assert.Equal(t, "Library", r.QualifiedName())
	assert.Equal(t, "Library_.java", r.Path())
}

func TestNewRepositories(t *testing.T) {
	f, err := load.Parse([]byte(`
package: org.example
repositories:
  - name: Library
    session:
      type: org.hibernate.StatelessSession
    finders:
      - name: book
        kind: id
        entity: Book
        params:
          - {name: isbn, type: String}
      - name: books
        entity: org.example.model.Book
        order_by:
          - {path: title, desc: true, ignore_case: true}
  - name: Reactive
    static: true
    finders:
      - name: book
        kind: id
        entity: Book
        params:
          - {name: s, type: org.hibernate.reactive.mutiny.Mutiny.StatelessSession}
          - {name: isbn, type: String}
`))
	require.NoError(t, err)
	repos, err := NewRepositories(f)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	lib := repos[0]
	require.Len(t, lib.Finders, 2)
	book := lib.Finders[0]
	assert.Equal(t, "org.example.Library", book.Repository)
	assert.Equal(t, "org.example.Book", book.Entity)
	assert.Equal(t, KindID, book.Kind)
	assert.Equal(t, TypeStatelessSession, book.SessionType)
	assert.Equal(t, "statelessSession", book.SessionName)
	assert.True(t, book.Stateless())
	assert.False(t, book.EntityManager)
	assert.True(t, book.BelongsToRepository)

	books := lib.Finders[1]
	assert.Equal(t, "org.example.model.Book", books.Entity)
	assert.Equal(t, KindCriteria, books.Kind)
	assert.Equal(t, []OrderBy{{Path: "title", Descending: true, IgnoreCase: true}}, books.OrderBys)

	static := repos[1].Finders[0]
	assert.False(t, static.BelongsToRepository)
	assert.True(t, static.Reactive)
	assert.Equal(t, TypeMutinyStatelessSession, static.SessionType)
	assert.Equal(t, []string{"s", "isbn"}, static.ParamNames)

	t.Run("unknown kind", func(t *testing.T) {
		f, err := load.Parse([]byte(`
repositories:
  - name: R
    finders:
      - {name: f, kind: query, entity: E}
`))
		require.NoError(t, err)
		_, err = NewRepositories(f)
		require.Error(t, err)
		assert.True(t, IsFinderError(err))
	})
}
