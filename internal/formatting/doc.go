// Package formatting renders command results as tables, JSON or YAML.
//
// Commands describe their result once as a Table (or a list of Fields for
// a single record) together with the raw value. The table formats render
// the rows with go-pretty in a kubectl-like layout; JSON and YAML encode
// the raw value so scripts see every field the backend returned.
package formatting
