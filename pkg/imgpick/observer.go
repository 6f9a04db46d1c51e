package imgpick

// Observer receives per-file events while a batch is being resolved.
// The resolver itself never logs; the presentation layer attaches an
// Observer to drive logging or a progress bar.
type Observer interface {
	// Start is called once, before the first file, with the size of the filename set.
	Start(total int)

	// Copied is called after name was copied (or would be copied in dry-run mode).
	Copied(name string)

	// NotFound is called when name does not exist in the source directory.
	NotFound(name string)

	// Failed is called when copying name failed.
	Failed(name string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Start(int)            {}
func (NopObserver) Copied(string)        {}
func (NopObserver) NotFound(string)      {}
func (NopObserver) Failed(string, error) {}

var _ Observer = NopObserver{}
