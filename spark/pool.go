package spark

import (
	"sync"

	"github.com/lixenwraith/ambient/parameter"
)

var burstPool = sync.Pool{
	New: func() any {
		return &Burst{
			Sparks: make([]Spark, 0, parameter.SparkCountMax),
		}
	},
}

// acquireBurst returns a pooled burst with no sparks
func acquireBurst() *Burst {
	b := burstPool.Get().(*Burst)
	b.Sparks = b.Sparks[:0]
	b.Age = 0
	b.Life = 0
	return b
}

// releaseBurst returns burst to pool
func releaseBurst(b *Burst) {
	if b == nil {
		return
	}
	clear(b.Sparks)
	b.Sparks = b.Sparks[:0]
	burstPool.Put(b)
}
