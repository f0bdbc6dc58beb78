//go:build libmpv

package backend

import (
	"github.com/reelctl/reelctl/constant"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/libmpv"
)

func init() {
	factories[constant.BackendLibMPV] = func() engine.Engine {
		return libmpv.New()
	}
}
