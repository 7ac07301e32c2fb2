package shared

// Repository is the collection contract shared by every entity kind.
// T is the stored record, I the creation input and P the partial update.
//
// Lookups on a missing id report ok=false instead of an error; the store
// has no failure mode of its own.
type Repository[T, I, P any] interface {
	List() []T
	Get(id string) (T, bool)
	Create(in I) T
	Update(id string, patch P) (T, bool)
	Delete(id string) bool
	Remove(id string) (T, bool)
	Len() int
}
