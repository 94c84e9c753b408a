package systems

import "container/heap"

// pathItem - узел открытого списка A*
type pathItem struct {
	Cell     int // Линейный индекс клетки
	Priority int // f = g + h. Чем меньше, тем раньше извлекается.
	H        int // Эвристика, тай-брейк при равном f
	Seq      int // Порядок вставки, второй тай-брейк (детерминизм)
	Index    int // Индекс в куче (нужен для update)
}

// pathQueue реализует heap.Interface
type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.H != b.H {
		return a.H < b.H
	}
	return a.Seq < b.Seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// update меняет приоритет элемента, который уже в куче
func (pq *pathQueue) update(item *pathItem, priority, h int) {
	item.Priority = priority
	item.H = h
	heap.Fix(pq, item.Index)
}
