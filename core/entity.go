package core

// Entity is a unique identifier for a visual entity, 0 is never allocated
type Entity uint64

// NoEntity is the zero entity returned by failed lookups
const NoEntity Entity = 0
