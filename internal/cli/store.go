package cli

import (
	"io"

	"github.com/helpdesklite/ticketgrid/internal/storage"
)

// openStore constructs the storage strategy selected by the global
// flags. The returned closer is a no-op for strategies with nothing
// to close.
func openStore(opts *RootOptions) (storage.Store, io.Closer, error) {
	switch opts.Store {
	case "volatile":
		return storage.NewVolatile(), nopCloser{}, nil
	case "session":
		st, err := storage.NewSession()
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open session store", err)
		}
		return st, st, nil
	default: // "persistent", validated by the root command
		st, err := storage.NewPersistent(opts.DBPath)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open persistent store", err)
		}
		return st, st, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
