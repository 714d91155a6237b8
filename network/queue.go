package network

type queueItem struct {
	stationID string
	distance  float64
	order     int // station position in the graph, breaks distance ties
	index     int
}

// stationQueue is a min-heap on tentative distance. Entries are never
// updated in place: a shorter distance pushes a new entry and the stale one
// is skipped when popped.
type stationQueue []*queueItem

func (pq stationQueue) Len() int { return len(pq) }

func (pq stationQueue) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].order < pq[j].order
}

func (pq stationQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *stationQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *stationQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}
