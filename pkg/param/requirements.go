package param

import (
	_ "embed"
	"sync"

	"github.com/mhatzl/pacemaker/pkg/req"
)

//go:embed requirements.yaml
var requirementsManifest []byte

var requirements = sync.OnceValue(func() *req.Registry {
	r := req.MustParse(requirementsManifest)
	if err := r.CheckComplete(fieldOrder); err != nil {
		panic(err)
	}
	return r
})

// Requirements returns the process-wide requirement registry for Param.
// The registry is built on first use and never mutated afterwards.
func Requirements() *req.Registry {
	return requirements()
}
