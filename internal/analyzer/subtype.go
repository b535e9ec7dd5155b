package analyzer

import (
	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/config"
)

// IsSubtype reports whether a value of type t1 may be used where t2 is
// expected. null fits any non-primitive type; int and boolean fit only
// themselves; class types follow the inheritance chain of t1.
func IsSubtype(classMap *classtree.ClassMap, t1, t2 string) bool {
	if t1 == config.NullTypeName {
		return !config.IsPrimitive(t2)
	}
	if t1 == config.IntTypeName || t2 == config.IntTypeName {
		return t1 == t2
	}
	if t1 == config.BooleanTypeName || t2 == config.BooleanTypeName {
		return t1 == t2
	}

	n1, n2 := classMap.Lookup(t1), classMap.Lookup(t2)
	if n1 == nil || n2 == nil {
		return false
	}
	return n1.IsDescendantOf(n2)
}

// typeExists reports whether typ names a primitive or a registered class.
func typeExists(classMap *classtree.ClassMap, typ string) bool {
	return config.IsPrimitive(typ) || classMap.Lookup(typ) != nil
}
