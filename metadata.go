package ioc

import (
	reflectPkg "reflect"

	"github.com/danpasecinic/ioc/internal/container"
)

// TagKey marks a struct field for property injection:
//
//	type CustomerBLL struct {
//	    DAL    CustomerDAL `ioc:""`
//	    Logger *Logger     `ioc:""`
//	}
const TagKey = container.TagKey

// catalog answers metadata queries from the descriptors of every scanned
// type set and falls back to reflection for undeclared types.
type catalog struct {
	descriptors map[reflectPkg.Type]*Descriptor
}

func newCatalog() *catalog {
	return &catalog{
		descriptors: make(map[reflectPkg.Type]*Descriptor),
	}
}

// add keeps the first declaration of a type, like the registry does.
func (c *catalog) add(d *Descriptor) bool {
	if _, exists := c.descriptors[d.typ]; exists {
		return false
	}
	c.descriptors[d.typ] = d
	return true
}

func (c *catalog) Constructors(t reflectPkg.Type) []container.Constructor {
	if d, ok := c.descriptors[t]; ok && len(d.constructors) > 0 {
		return d.constructors
	}
	return container.Inferred.Constructors(t)
}

func (c *catalog) Properties(t reflectPkg.Type) []container.Property {
	return container.Inferred.Properties(t)
}

func (c *catalog) Markers(t reflectPkg.Type) container.Markers {
	d, ok := c.descriptors[t]
	if !ok {
		return container.Markers{}
	}
	return container.Markers{
		ImportConstructor: d.importConstructor,
		Exports:           d.exports,
	}
}
