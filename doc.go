// Package firstbase validates firstbase JSON documents against GS1 Swagger
// schemas. The schema is loaded once into an immutable Schema, a short-name
// Index is built over it, and a Validator walks each document recursively,
// collecting every discrepancy as an Issue instead of failing fast.
//
// The package performs no I/O: schema acquisition lives in the swagger
// subpackage and document reading in the caller, which keeps validation
// deterministic and hermetically testable.
package firstbase
