package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFinder(t *testing.T, spec *FinderSpec) *Finder {
	t.Helper()
	f, err := NewFinder(spec, NewImportContext("org.example"))
	require.NoError(t, err)
	return f
}

func TestQueryState(t *testing.T) {
	assert.Equal(t, "raw", StateRaw.String())
	assert.Equal(t, "unwrapped", StateUnwrapped.String())

	assert.Equal(t, StateRaw, newTestFinder(t, entityManager(personFinder(KindCriteria, "find"))).initialState())
	assert.Equal(t, StateUnwrapped, newTestFinder(t, personFinder(KindCriteria, "find")).initialState())
	assert.Equal(t, StateUnwrapped, newTestFinder(t, mutiny(personFinder(KindCriteria, "find"))).initialState())
}

func TestUnwrapQuery(t *testing.T) {
	f := newTestFinder(t, entityManager(personFinder(KindCriteria, "find")))

	c, st := f.unwrapQuery(chain{head: "q"}, StateRaw)
	assert.Equal(t, StateUnwrapped, st)
	assert.Equal(t, []string{".unwrap(SelectionQuery.class)"}, c.calls)

	again, st := f.unwrapQuery(c, st)
	assert.Equal(t, StateUnwrapped, st)
	assert.Equal(t, c.calls, again.calls)
}

func TestUnwrapSession(t *testing.T) {
	tests := []struct {
		name string
		spec *FinderSpec
		want bool
	}{
		{"criteria on entity manager", entityManager(personFinder(KindCriteria, "find")), false},
		{"id without profiles", entityManager(personFinder(KindID, "findById", "id", "long")), false},
		{"id with profiles", func() *FinderSpec {
			s := entityManager(personFinder(KindID, "findById", "id", "long"))
			s.FetchProfiles = []string{"p"}
			return s
		}(), true},
		{"natural id", entityManager(personFinder(KindNaturalID, "findBySsn", "ssn", "String")), true},
		{"natural id on a native session", personFinder(KindNaturalID, "findBySsn", "ssn", "String"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFinder(t, tt.spec)
			c, st := f.unwrapSession(chain{head: "return s"}, f.initialState())
			if tt.want {
				assert.Equal(t, []string{".unwrap(Session.class)"}, c.calls)
				assert.Equal(t, StateUnwrapped, st)
			} else {
				assert.Empty(t, c.calls)
			}
		})
	}
}

func TestTranslations(t *testing.T) {
	single := newTestFinder(t, personFinder(KindID, "findById", "id", "long"))
	assert.Equal(t, []translation{
		{"jakarta.persistence.NoResultException", "jakarta.data.exceptions.EmptyResultException"},
		{"jakarta.persistence.NonUniqueResultException", "jakarta.data.exceptions.NonUniqueResultException"},
		{"jakarta.persistence.PersistenceException", "jakarta.data.exceptions.DataException"},
	}, single.translations())

	multi := newTestFinder(t, personFinder(KindCriteria, "find"))
	assert.Equal(t, []translation{
		{"jakarta.persistence.PersistenceException", "jakarta.data.exceptions.DataException"},
	}, multi.translations())
}

func TestGuards(t *testing.T) {
	spec := personFinder(KindID, "findById", "id", "long")
	assert.False(t, newTestFinder(t, spec).blockingGuard())

	spec.WrapsExceptions = true
	assert.True(t, newTestFinder(t, spec).blockingGuard())

	reactive := mutiny(personFinder(KindID, "findById", "id", "long"))
	reactive.WrapsExceptions = true
	f := newTestFinder(t, reactive)
	assert.False(t, f.blockingGuard())
	assert.Len(t, f.translateFailures(chain{head: "s"}).calls, 6)
}
