package memory

import (
	"testing"

	"github.com/botforum/botforum/lib/store/storetest"
)

func TestImpl(t *testing.T) {
	storetest.Common(t, factory{}, nil)
}
