// Package all is a meta-package that imports every store backend so that
// their factories register themselves.
package all

import (
	_ "github.com/botforum/botforum/lib/store/bbolt"
	_ "github.com/botforum/botforum/lib/store/memory"
	_ "github.com/botforum/botforum/lib/store/valkey"
)
