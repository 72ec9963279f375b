/*
Package chash provides an in-memory hash table mapping integer keys to string
values, using separate chaining for collisions and growing automatically as it
fills.

Basic usage:

	import "github.com/theflywheel/chash"

	// Create a table with 8 buckets that grows at 75% load
	t, err := chash.New(8, 0.75)
	if err != nil {
		log.Fatal(err)
	}

	// Insert data
	t.Put(12345, "alpha")
	t.Put(67890, "beta")

	// Retrieve data
	if v, ok := t.Search(12345); ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	old, ok := t.Remove(67890)

Features:

  - Integer keys, string values
  - Separate chaining: each bucket holds every pair whose key hashes to it
  - Automatic resizing once size/capacity reaches the configured load factor
  - Uses xxhash for good key distribution
  - Resize events logged through logrus and reported to an optional Observer

Implementation Details:

The table owns a slice of buckets, each an unordered slice of key/value pairs
with no duplicate keys. A key lives in bucket xxhash(key) mod capacity.

When an insertion brings size/capacity to the load factor, a new bucket slice
GrowthCoefficient times larger is allocated and every pair of every bucket is
rehashed into it before it replaces the old one. Removal never shrinks the
table, so capacity only grows.

A Table is not safe for concurrent use. Callers sharing one across goroutines
must serialize access themselves, for example with a sync.Mutex held around
every call.
*/
package chash
