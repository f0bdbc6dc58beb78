// Package backend resolves the configured engine backend.
package backend

import (
	"fmt"
	"slices"

	"github.com/reelctl/reelctl/constant"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvipc"
	"github.com/reelctl/reelctl/key"
	"github.com/spf13/viper"
)

var factories = map[string]func() engine.Engine{
	constant.BackendMPVIPC: func() engine.Engine {
		return mpvipc.New(viper.GetString(key.EngineMPVPath))
	},
}

// Available lists the backends compiled into this binary.
func Available() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the engine for the named backend.
func Get(name string) (engine.Engine, error) {
	factory, ok := factories[name]
	if !ok {
		if name == constant.BackendLibMPV {
			return nil, fmt.Errorf("backend %s is not available: build with -tags libmpv", name)
		}
		return nil, fmt.Errorf("unknown engine backend %q, available: %v", name, Available())
	}
	return factory(), nil
}

// Configured returns the engine selected by the engine.backend setting.
func Configured() (engine.Engine, error) {
	return Get(viper.GetString(key.EngineBackend))
}
