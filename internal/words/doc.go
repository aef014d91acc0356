// Package words holds the tiered spelling word lists. The store is loaded
// once from static JSON documents and is read-only afterwards.
package words
