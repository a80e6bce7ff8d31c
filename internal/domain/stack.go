package domain

// stack は履歴用の汎用 LIFO。
type stack[E any] struct {
	data []E
}

func (s *stack[E]) Push(v E) {
	s.data = append(s.data, v)
}

// Pop は末尾の要素を取り出す。空の場合は ok=false を返す。
func (s *stack[E]) Pop() (E, bool) {
	var zero E
	if s.IsEmpty() {
		return zero, false
	}
	n := len(s.data)
	ret := s.data[n-1]
	s.data[n-1] = zero
	s.data = s.data[:n-1]
	return ret, true
}

// Top は空でないことを呼び出し側が保証する。
func (s *stack[E]) Top() E {
	return s.data[len(s.data)-1]
}

func (s *stack[E]) Len() int {
	return len(s.data)
}

func (s *stack[E]) IsEmpty() bool {
	return len(s.data) == 0
}

// Clear は要素を全て破棄する。バッキング配列は再利用する。
func (s *stack[E]) Clear() {
	var zero E
	for i := range s.data {
		s.data[i] = zero
	}
	s.data = s.data[:0]
}
