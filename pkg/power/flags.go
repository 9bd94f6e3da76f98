// Package power manages the cooperative standby protocol: requesting
// peer sleep, halting, and reconstructing state after the restart that
// follows a wake. Standby is a full stop; the wake is observed as a
// fresh start with a latched flag, never as a resumed call stack.
package power

import (
	"os"
	"path/filepath"
)

// Flag is a latched power-controller flag surviving standby.
type Flag string

// The two latched flags.
const (
	// FlagStandby records that the node went through standby.
	FlagStandby Flag = "standby"
	// FlagWakeup records the wake event itself.
	FlagWakeup Flag = "wakeup"
)

// FlagStore latches flags across the standby/restart boundary.
type FlagStore interface {
	Set(Flag) error
	Clear(Flag) error
	IsSet(Flag) (bool, error)
}

// FileFlags latches flags as files in a directory.
type FileFlags struct {
	Dir string
}

func (f *FileFlags) path(flag Flag) string {
	return filepath.Join(f.Dir, string(flag)+".flag")
}

// Set implements FlagStore.
func (f *FileFlags) Set(flag Flag) error {
	file, err := os.OpenFile(f.path(flag), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// Clear implements FlagStore.
func (f *FileFlags) Clear(flag Flag) error {
	err := os.Remove(f.path(flag))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsSet implements FlagStore.
func (f *FileFlags) IsSet(flag Flag) (bool, error) {
	_, err := os.Stat(f.path(flag))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemFlags is an in-memory FlagStore for tests.
type MemFlags struct {
	flags map[Flag]bool
}

// Set implements FlagStore.
func (m *MemFlags) Set(flag Flag) error {
	if m.flags == nil {
		m.flags = make(map[Flag]bool)
	}
	m.flags[flag] = true
	return nil
}

// Clear implements FlagStore.
func (m *MemFlags) Clear(flag Flag) error {
	delete(m.flags, flag)
	return nil
}

// IsSet implements FlagStore.
func (m *MemFlags) IsSet(flag Flag) (bool, error) {
	return m.flags[flag], nil
}
