package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyParam(t *testing.T) {
	tests := []struct {
		typ  string
		want ParamKind
	}{
		{"jakarta.persistence.EntityManager", ParamSession},
		{"org.hibernate.Session", ParamSession},
		{"org.hibernate.StatelessSession", ParamSession},
		{"org.hibernate.reactive.mutiny.Mutiny.Session", ParamSession},
		{" org.hibernate.Session ", ParamSession},
		{"org.hibernate.query.Page", ParamPage},
		{"org.hibernate.query.KeyedPage<org.example.Person>", ParamKeyedPage},
		{"org.hibernate.query.Order<? super org.example.Person>", ParamOrder},
		{"org.hibernate.query.Order<? super org.example.Person>...", ParamOrder},
		{"org.hibernate.query.Order<org.example.Person>[]", ParamOrder},
		{"java.util.List<org.hibernate.query.Order<? super org.example.Person>>", ParamOrder},
		{"jakarta.data.Limit", ParamLimit},
		{"jakarta.data.Sort<org.example.Person>", ParamSort},
		{"jakarta.data.Order<org.example.Person>", ParamSort},
		{"jakarta.data.page.PageRequest", ParamPageRequest},
		{"jakarta.persistence.LockModeType", ParamLockMode},
		{"org.hibernate.LockMode", ParamLockMode},
		{"java.util.List<String>", ParamOrdinary},
		{"java.util.List<org.hibernate.query.Page>", ParamOrdinary},
		{"String", ParamOrdinary},
		{"int", ParamOrdinary},
		{"Page", ParamOrdinary},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got := ClassifyParam(tt.typ)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != ParamOrdinary, IsSpecialParam(tt.typ))
		})
	}
}

func TestIsSessionType(t *testing.T) {
	assert.True(t, IsSessionType(TypeMutinyStatelessSession))
	assert.False(t, IsSessionType("org.hibernate.query.Page"))
	assert.False(t, IsSessionType("Session"))
}

func TestParamKindString(t *testing.T) {
	assert.Equal(t, "ordinary", ParamOrdinary.String())
	assert.Equal(t, "keyed page", ParamKeyedPage.String())
	assert.Equal(t, "unknown", ParamKind(200).String())
	assert.False(t, ParamOrdinary.Special())
	assert.True(t, ParamLimit.Special())
}

func TestEraseGenerics(t *testing.T) {
	tests := map[string]string{
		"java.util.List<java.util.Map<String,Integer>>": "java.util.List",
		"org.hibernate.query.Order<? super Person>...":  "org.hibernate.query.Order...",
		"String[]": "String[]",
		"int":      "int",
	}
	for in, want := range tests {
		assert.Equal(t, want, eraseGenerics(in), in)
	}
}

func TestSplitGeneric(t *testing.T) {
	base, args := splitGeneric("java.util.List<java.util.Map<K,V>>")
	assert.Equal(t, "java.util.List", base)
	assert.Equal(t, "java.util.Map<K,V>", args)

	base, args = splitGeneric("String")
	assert.Equal(t, "String", base)
	assert.Empty(t, args)
}

func TestIsPrimitive(t *testing.T) {
	for _, p := range []string{"boolean", "byte", "short", "int", "long", "char", "float", "double"} {
		assert.True(t, isPrimitive(p), p)
	}
	for _, p := range []string{"Integer", "String", "int[]", "void"} {
		assert.False(t, isPrimitive(p), p)
	}
}
