package sky

import (
	"github.com/32bitkid/sky/resource"
)

type diskMapping struct {
	root  *Root
	entry resource.Entry
}

func (dm *diskMapping) Entry() resource.Entry { return dm.entry }

func (dm *diskMapping) Resource() (*resource.Resource, error) {
	return dm.root.cached(dm.entry)
}
