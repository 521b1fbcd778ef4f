package domain

import (
	"encoding/json"
	"sort"
)

// UserSet is a set of user ids. It is stored and encoded as a sorted JSON array.
type UserSet map[string]struct{}

func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s UserSet) Contains(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether the set changed
func (s *UserSet) Add(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	if *s == nil {
		*s = make(UserSet)
	}
	(*s)[id] = struct{}{}
	return true
}

func (s UserSet) Slice() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s UserSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *UserSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewUserSet(ids...)
	return nil
}
