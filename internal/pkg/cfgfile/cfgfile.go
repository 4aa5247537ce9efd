package cfgfile

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
)

type MarshalFunc = func(in interface{}) (out []byte, err error)
type UnmarshalFunc = func(in []byte, out interface{}) error

// F is a settings file encoded with a pair of marshal functions.
type F struct {
	filename  string
	marshal   MarshalFunc
	unmarshal UnmarshalFunc
}

func New(filename string, marshal MarshalFunc, unmarshal UnmarshalFunc) *F {
	return &F{
		filename:  filename,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

// NextToExecutable names a file in the directory of the running program.
func NextToExecutable(name string) string {
	return filepath.Join(filepath.Dir(os.Args[0]), name)
}

func (x *F) Set(in interface{}) error {
	data, err := x.marshal(in)
	if err != nil {
		return x.err(err)
	}
	if err := os.MkdirAll(filepath.Dir(x.filename), 0777); err != nil {
		return x.err(err)
	}
	if err := ioutil.WriteFile(x.filename, data, 0666); err != nil {
		return x.err(err)
	}
	return nil
}

// Get decodes the file into out. A missing file gives an error for which
// os.IsNotExist holds.
func (x *F) Get(out interface{}) error {
	data, err := ioutil.ReadFile(x.filename)
	if err != nil {
		return err
	}
	if err := x.unmarshal(data, out); err != nil {
		return x.err(err)
	}
	return nil
}

// Exists reports whether the file is there.
func (x *F) Exists() bool {
	_, err := os.Stat(x.filename)
	return err == nil
}

func (x *F) err(err error) error {
	return merry.Append(err, x.filename)
}

func (x *F) Filename() string {
	return x.filename
}
