package data

import "encoding/json"

// GetList decodes the collection stored under key. A key that was never
// written and a key holding data that fails to decode both yield an empty
// list; no error is ever reported.
func GetList[T any](s Store, key string) []T {
	raw, ok := s.Get(key)
	if !ok {
		return nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// SetList overwrites the collection under key with list.
func SetList[T any](s Store, key string, list []T) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.Set(key, raw)
}

// AddItem appends item to the collection under key. It is a plain
// read-modify-write with no compare-and-swap: with a single writer (the usage
// model here) order is preserved; concurrent writers on a shared medium would
// race and the last writer wins.
func AddItem[T any](s Store, key string, item T) error {
	return SetList(s, key, append(GetList[T](s, key), item))
}
