// Package kernel provides core domain primitives for the pressing marketplace.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A value object for monetary amounts held in euro cents
//
// All types in this package are value objects: immutable, comparable, and
// constructed only through their factory functions so that invalid values
// cannot enter the domain model.
package kernel
