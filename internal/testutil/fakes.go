package testutil

import (
	"context"
	"errors"
)

// ErrStorageDown is returned by FailingKV.
var ErrStorageDown = errors.New("storage unavailable")

// FailingKV is a key-value store whose writes always fail. Reads return
// Value (or ErrStorageDown when Value is empty), which lets tests plant a
// corrupt snapshot.
type FailingKV struct {
	Value  string
	Writes int
}

func (f *FailingKV) Get(context.Context, string) (string, error) {
	if f.Value == "" {
		return "", ErrStorageDown
	}
	return f.Value, nil
}

func (f *FailingKV) Set(context.Context, string, string) error {
	f.Writes++
	return ErrStorageDown
}

func (f *FailingKV) Remove(context.Context, string) error {
	f.Writes++
	return ErrStorageDown
}
