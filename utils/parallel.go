package utils

// PartitionMap splits an index range [0,MaxIndex) into ParallelDegree nearly
// equal contiguous buckets. Used to fan row-parallel loops out over workers
// where iterations have no cross dependencies.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	if ParallelDegree > maxIndex && maxIndex > 0 {
		ParallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Split1D computes bucket n of the range. The remainder indices are spread
// one each over the leading buckets so bucket sizes differ by at most one.
func (pm *PartitionMap) Split1D(n int) (minmax [2]int) {
	var (
		base = pm.MaxIndex / pm.ParallelDegree
		rem  = pm.MaxIndex % pm.ParallelDegree
		min  int
	)
	for k := 0; k < n; k++ {
		min += base
		if k < rem {
			min++
		}
	}
	max := min + base
	if n < rem {
		max++
	}
	minmax = [2]int{min, max}
	return
}

// GetBucketRange returns [min,max) for bucket n
func (pm *PartitionMap) GetBucketRange(n int) (min, max int) {
	min, max = pm.Partitions[n][0], pm.Partitions[n][1]
	return
}
