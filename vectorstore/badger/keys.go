package badger

// Key prefixes for different data types
const (
	chunkPrefix     = "chunk"
	dimensionPrefix = "coldim"
)

// makeChunkKey generates a key for a chunk within a collection.
func makeChunkKey(collection, chunkID string) []byte {
	return []byte(chunkPrefix + ":" + collection + ":" + chunkID)
}

// makeCollectionPrefix generates the scan prefix for all chunks of a collection.
func makeCollectionPrefix(collection string) []byte {
	return []byte(chunkPrefix + ":" + collection + ":")
}

// makeDimensionKey generates the key holding a collection's vector dimension.
func makeDimensionKey(collection string) []byte {
	return []byte(dimensionPrefix + ":" + collection)
}
