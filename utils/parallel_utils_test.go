package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Bucket sizes cover the range with a maximum imbalance of one
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 7)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1]))
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets are contiguous
		for maxIndex := 10; maxIndex < 300; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			assert.Equal(t, 0, pm.Partitions[0][0])
			assert.Equal(t, maxIndex, pm.Partitions[4][1])
			for np := 1; np < 5; np++ {
				assert.Equal(t, pm.Partitions[np-1][1], pm.Partitions[np][0])
			}
		}
	}
	{ // Parallel degree never exceeds the work size
		assert.Equal(t, 3, ParallelDegree(8, 3))
		assert.Equal(t, 2, ParallelDegree(2, 100))
		assert.Equal(t, 1, ParallelDegree(4, 0))
		assert.True(t, ParallelDegree(0, 1<<20) >= 1)
	}
}
