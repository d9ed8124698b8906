package container

import (
	"reflect"

	reflectx "github.com/danpasecinic/ioc/internal/reflect"
)

// injectProperties resolves every property of t marked for injection and
// assigns it on instance. Struct values are copied into an addressable
// value first, so the returned value may differ from instance.
func (c *Container) injectProperties(s *session, t reflect.Type, instance reflect.Value) (reflect.Value, error) {
	props := c.meta.Properties(t)
	if len(props) == 0 {
		return instance, nil
	}

	var target reflect.Value
	switch instance.Kind() {
	case reflect.Ptr:
		if instance.IsNil() || instance.Elem().Kind() != reflect.Struct {
			return instance, nil
		}
		target = instance.Elem()
	case reflect.Struct:
		if !instance.CanAddr() {
			addressable := reflect.New(instance.Type()).Elem()
			addressable.Set(instance)
			instance = addressable
		}
		target = instance
	default:
		return instance, nil
	}

	owner := reflectx.TypeName(t)
	for _, prop := range props {
		if !prop.Settable {
			return reflect.Value{}, errUnresolvableProperty(
				owner, prop.Name, "field is not exported", s.names(),
			)
		}
		if c.strict && !c.registry.Has(prop.Type) {
			return reflect.Value{}, errUnresolvableProperty(
				owner, prop.Name, "type "+reflectx.TypeName(prop.Type)+" is not registered", s.names(),
			)
		}

		value, err := c.resolve(s, prop.Type, request{})
		if err != nil {
			return reflect.Value{}, err
		}

		c.logger.Debug("property injected", "type", owner, "property", prop.Name)
		target.FieldByIndex(prop.Index).Set(value)
	}

	return instance, nil
}
