package translate

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// scratch holds the buffers of a translation call: two pass buffers to
// ping-pong between, a buffer for converted input, and three position maps
// (incoming, pass-local and composed).
//
// Translations are frequent and short-lived; to avoid allocating buffers
// over and over we will pool them.
type scratch struct {
	runes [3][]rune
	maps  [3][]int
}

// ensure makes all buffers hold at least n elements.
func (s *scratch) ensure(n int) {
	for i := range s.runes {
		if cap(s.runes[i]) < n {
			s.runes[i] = make([]rune, n)
		}
		s.runes[i] = s.runes[i][:n]
	}
	for i := range s.maps {
		if cap(s.maps[i]) < n {
			s.maps[i] = make([]int, n)
		}
		s.maps[i] = s.maps[i][:n]
	}
}

type scratchPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScratchPool *scratchPool

func init() {
	globalScratchPool = &scratchPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &scratch{}, nil
		})
	globalScratchPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScratchPool.opool = pool.NewObjectPool(globalScratchPool.ctx, factory, config)
}

// borrowScratch returns pooled buffers of at least n elements each.
func borrowScratch(n int) *scratch {
	o, err := globalScratchPool.opool.BorrowObject(globalScratchPool.ctx)
	if err != nil {
		tracer().Errorf("cannot borrow scratch buffers: %v", err)
		o = &scratch{}
	}
	s := o.(*scratch)
	s.ensure(n)
	return s
}

// release puts the buffers back into the pool.
func (s *scratch) release() {
	_ = globalScratchPool.opool.ReturnObject(globalScratchPool.ctx, s)
}
