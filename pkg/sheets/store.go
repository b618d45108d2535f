package sheets

// Store is durable key-value storage for a workbook.
//
// Load reports ok=false for a missing key. A Store is only ever called from the
// goroutine that owns the Workbook.
type Store interface {
	Load(key string) (value []byte, ok bool, err error)
	Save(key string, value []byte) error
	Delete(key string) error
}
