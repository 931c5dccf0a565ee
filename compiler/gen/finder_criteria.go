package gen

import (
	"fmt"
	"strings"
)

// criteriaFinder finds entities with a criteria query restricting every
// ordinary parameter to equal its attribute.
type criteriaFinder struct{}

func (criteriaFinder) Kind() Kind { return KindCriteria }

func (criteriaFinder) SingleResult(f *Finder) bool { return f.Spec.SingleResult }

func (criteriaFinder) ReturnType(f *Finder) string {
	entity := f.imports.Import(f.Spec.Entity)
	if f.Spec.SingleResult {
		return entity
	}
	return f.imports.Import(TypeList) + "<" + entity + ">"
}

func (criteriaFinder) NeedsNativeSession(*Finder) bool { return false }

func (criteriaFinder) Check(f *Finder) error {
	for i, k := range f.kinds {
		name := f.Spec.ParamNames[i]
		switch k {
		case ParamOrdinary, ParamSession, ParamLockMode:
		case ParamPage, ParamOrder, ParamLimit:
			if f.Spec.SingleResult {
				return NewFinderError(f.Spec.Method, name, fmt.Sprintf("%s parameters need a multi-result finder", k))
			}
			if elem, ok := elementType(f.Spec.ParamTypes[i]); ok && k == ParamOrder {
				// setOrder takes one Order or a List of them.
				if base, _ := splitGeneric(elem); base == TypeList || eraseArray(elem) != elem {
					return NewFinderError(f.Spec.Method, name, "an order array must hold single orders")
				}
			}
		default:
			return NewFinderError(f.Spec.Method, name, fmt.Sprintf("%s parameters are not supported by criteria finders", k))
		}
	}
	for _, o := range f.Spec.OrderBys {
		if strings.TrimSpace(o.Path) == "" {
			return NewFinderError(f.Spec.Method, "", "empty order-by path")
		}
	}
	return nil
}

// Prepare builds the criteria query:
//
//	var builder = session.getFactory().getCriteriaBuilder();
//	var query = builder.createQuery(Person.class);
//	var entity = query.from(Person.class);
//	query.where(...);
//	query.orderBy(...);
func (criteriaFinder) Prepare(f *Finder, s *source) {
	factory := ".getFactory()"
	if f.Spec.EntityManager {
		factory = ".getEntityManagerFactory()"
	}
	s.linef("var builder = %s%s.getCriteriaBuilder();", f.receiver(), factory)
	s.linef("var query = builder.createQuery(%s);", f.entityClass())
	s.linef("var entity = query.from(%s);", f.entityClass())
	if idx := f.ordinaryIndexes(); len(idx) > 0 {
		preds := make([]string, len(idx))
		for i, j := range idx {
			name, typ := f.Spec.ParamNames[j], f.Spec.ParamTypes[j]
			path := attributePath(name)
			if isPrimitive(typ) {
				preds[i] = fmt.Sprintf("builder.equal(%s, %s)", path, name)
			} else {
				preds[i] = fmt.Sprintf("%s == null ? builder.isNull(%s) : builder.equal(%s, %s)", name, path, path, name)
			}
		}
		s.line("query.where(")
		s.continued(preds, ",", "")
		s.line(");")
	}
	if len(f.Spec.OrderBys) > 0 {
		orders := make([]string, len(f.Spec.OrderBys))
		for i, o := range f.Spec.OrderBys {
			expr := attributePath(o.Path)
			if o.IgnoreCase {
				expr = "builder.lower(" + expr + ")"
			}
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			orders[i] = "builder." + dir + "(" + expr + ")"
		}
		s.line("query.orderBy(")
		s.continued(orders, ",", "")
		s.line(");")
	}
}

func (criteriaFinder) CreateQuery(_ *Finder, c chain, st QueryState) (chain, QueryState) {
	return c.with(".createQuery(query)"), st
}

// ApplySpecial applies pagination, ordering and locking parameters. Pages
// and orders are native API and unwrap a raw query once. An array or varargs
// of orders is passed as a List.
func (criteriaFinder) ApplySpecial(f *Finder, c chain, st QueryState) (chain, QueryState) {
	for i, k := range f.kinds {
		name := f.Spec.ParamNames[i]
		switch k {
		case ParamPage:
			c, st = f.unwrapQuery(c, st)
			c = c.withf(".setPage(%s)", name)
		case ParamOrder:
			c, st = f.unwrapQuery(c, st)
			if _, ok := elementType(f.Spec.ParamTypes[i]); ok {
				c = c.withf(".setOrder(%s.of(%s))", f.imports.Import(TypeList), name)
			} else {
				c = c.withf(".setOrder(%s)", name)
			}
		case ParamLimit:
			c = c.withf(".setFirstResult((int) %s.startAt() - 1)", name).
				withf(".setMaxResults(%s.maxResults())", name)
		case ParamLockMode:
			if eraseGenerics(f.Spec.ParamTypes[i]) == "org.hibernate.LockMode" {
				c, st = f.unwrapQuery(c, st)
				c = c.withf(".setHibernateLockMode(%s)", name)
			} else {
				c = c.withf(".setLockMode(%s)", name)
			}
		}
	}
	return c, st
}

func (criteriaFinder) Terminal(f *Finder, c chain) chain {
	if f.Spec.SingleResult {
		return c.with(".getSingleResult()")
	}
	return c.with(".getResultList()")
}

// attributePath navigates from the query root to a (nested) attribute:
// "address$city" becomes entity.get("address").get("city").
func attributePath(path string) string {
	var b strings.Builder
	b.WriteString("entity")
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '$' || r == '.' }) {
		b.WriteString(".get(" + javaString(seg) + ")")
	}
	return b.String()
}
