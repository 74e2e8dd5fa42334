// Package catalog holds the immutable in-memory game catalog and loads it
// from the dataset CSV.
package catalog
