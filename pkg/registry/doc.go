// Package registry resolves type names to runtime type handles and owns the
// converter machinery that translates between live instances and their
// serialized bodies.
//
// A [Type] bundles everything the graph engines need to know about one
// registered Go type: its fully qualified wire name, a [Model] that allocates
// blank instances, and an ordered chain of [Converter] implementations.
//
// # Converter Chains
//
// Converters for a type form an explicit ordered chain. Dispatch starts at
// the first link; a wrapping converter can delegate to the link after itself
// via [Type.ConverterAfter], which replaces marker-based "skip this handler"
// dispatch with a plain cursor:
//
//	func (c *auditingConverter) Export(inst any, w registry.ReferenceWriter) (*serial.Value, error) {
//	    next, err := c.typ.ConverterAfter(c)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return next.Export(inst, w)
//	}
//
// # Instance Identity
//
// Models must allocate pointer instances: the writer deduplicates by instance
// identity, and pointers are the only values with a usable identity in Go.
// Register rejects models that return non-pointer values.
package registry
