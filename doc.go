// Package h3runtime exposes the H3 hexagonal grid library (libh3 v3) to
// dynamically typed hosts.
//
// Every libh3 operation is reachable by name through a dispatch table that
// accepts and returns host values: integers, floats, strings, sequences and
// ordered maps with keys lat, lon, geofence, holes, i and j. Cell indexes
// cross the boundary as signed 64-bit integers carrying the raw index bits.
//
// # Architecture Overview
//
//	h3runtime/
//	├── value/       Host value model and JSON codec
//	├── errors/      Structured errors with phase and kind
//	├── native/      Library interface mirroring libh3 v3
//	├── codec/       Numeric codec: cells, coordinates, degrees and radians
//	├── oracle/      Capacity queries sizing every output buffer
//	├── marshal/     Zeroed scratch buffers, fill and sentinel policies
//	├── polygon/     Polygon input encoder (geofence + holes)
//	├── linked/      Linked multi-polygon decoder
//	├── dispatch/    Operation table, signatures, JSON schemas
//	├── libh3/       cgo binding (build tag h3)
//	├── shape/       GeoJSON and WKT rendering via orb
//	├── metrics/     Prometheus observer
//	├── wasmhost/    wazero host module for WebAssembly guests
//	└── cmd/h3/      Command line and interactive TUI
//
// # Quick Start
//
//	lib, err := libh3.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tbl, err := dispatch.New(lib)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ring, err := tbl.Call("kRing", value.Int(0x8928308280fffff), value.Int(1))
//	fmt.Println(ring) // seven cells
//
// # Results
//
// Operations whose native call can fail answer false instead of raising. A
// native failure of any other operation is returned as a native_failure
// error naming the operation.
// Argument errors are returned before any native call and carry the
// operation name and the path to the offending value, for example
// polygon.holes[1][1].lat.
//
// # Thread Safety
//
// A Table is immutable after New and safe for concurrent use. libh3 keeps no
// global state.
//
// # Memory Model
//
// Every output buffer is sized by the matching libh3 bound query, zeroed and
// released on all paths. With the h3 tag the buffers live on the C heap so
// libh3 may write into them under cgo pointer rules.
package h3runtime
