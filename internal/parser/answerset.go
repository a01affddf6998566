package parser

import "strconv"

// AnswerSet 有序的 "可接受答案 -> 分值" 映射。
// 重复写入同一个答案时覆盖分值，保留首次出现的位置。
type AnswerSet struct {
	keys   []string
	scores map[string]int
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{scores: make(map[string]int)}
}

func (s *AnswerSet) Set(answer string, score int) {
	if _, ok := s.scores[answer]; !ok {
		s.keys = append(s.keys, answer)
	}
	s.scores[answer] = score
}

func (s *AnswerSet) Get(answer string) (int, bool) {
	score, ok := s.scores[answer]
	return score, ok
}

func (s *AnswerSet) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *AnswerSet) Len() int {
	return len(s.keys)
}

// ScoringMap 全局序号 -> AnswerSet，按插入顺序输出
type ScoringMap struct {
	keys []string
	sets map[string]*AnswerSet
}

func NewScoringMap() *ScoringMap {
	return &ScoringMap{sets: make(map[string]*AnswerSet)}
}

func (m *ScoringMap) Put(index int, set *AnswerSet) {
	key := strconv.Itoa(index)
	if _, ok := m.sets[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.sets[key] = set
}

func (m *ScoringMap) Get(key string) (*AnswerSet, bool) {
	set, ok := m.sets[key]
	return set, ok
}

func (m *ScoringMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *ScoringMap) Len() int {
	return len(m.keys)
}
