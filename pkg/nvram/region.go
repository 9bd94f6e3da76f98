// Package nvram provides the small durable byte region standing in for
// battery-backed SRAM: contents survive the node's standby/restart
// cycle but carry no structure of their own.
package nvram

import (
	"io/ioutil"
	"os"
)

// Region is a durable block of bytes read and written as a whole.
type Region interface {
	// Load reads the region. A region never written reads empty.
	Load() ([]byte, error)
	// Store overwrites the region starting at its base.
	Store([]byte) error
}

// File is a file-backed Region.
type File struct {
	Path string
}

// Load implements Region.
func (f *File) Load() ([]byte, error) {
	b, err := ioutil.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return b, err
}

// Store implements Region.
func (f *File) Store(b []byte) error {
	return ioutil.WriteFile(f.Path, b, 0644)
}

// Mem is an in-memory Region for tests.
type Mem struct {
	Bytes []byte
}

// Load implements Region.
func (m *Mem) Load() ([]byte, error) {
	return m.Bytes, nil
}

// Store implements Region.
func (m *Mem) Store(b []byte) error {
	m.Bytes = append(m.Bytes[:0], b...)
	return nil
}
