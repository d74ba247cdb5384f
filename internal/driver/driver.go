// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package driver assembles a runnable Kernel interpreter: the ground
// environment plus the standard library written in Kernel itself
// (kernel.k), optionally extended with extension.k, found by
// searching the directories named in KERNELPATH.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.hybscloud.com/kernel"
	"code.hybscloud.com/kernel/internal/reader"
)

func init() {
	kernel.LoadSource = loadSource
}

// SearchPath returns the directories load and the bootstrap loader
// search, in order: the working directory first, then each
// colon-separated entry of KERNELPATH.
func SearchPath() []string {
	paths := []string{"."}
	if v := os.Getenv("KERNELPATH"); v != "" {
		for _, p := range strings.Split(v, ":") {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	for _, dir := range SearchPath() {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: not found on KERNELPATH", name)
}

// loadSource reads and parses a Kernel source file found via
// SearchPath; it is wired into kernel.LoadSource so the `load`
// primitive and the bootstrap loading below share one file-resolution
// policy.
func loadSource(name string) ([]kernel.Value, error) {
	path, err := resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return reader.ReadAll(path, string(data))
}

// Driver owns one Kernel evaluation session: a root continuation
// (wrapped in a BaseErrorCont so an uncaught error is reported instead
// of crashing the session) and the environment built above it.
type Driver struct {
	Root  kernel.Cont
	Env   *kernel.Environment
	Hooks *kernel.Hooks
}

func newDriver(onError func(*kernel.ErrorObject)) *Driver {
	trueRoot := kernel.NewRootCont()
	errCont := kernel.NewBaseErrorCont(trueRoot, onError)
	env := kernel.NewGroundEnvironment(errCont)
	return &Driver{Root: errCont, Env: env}
}

// NewStandard builds the ground environment and loads kernel.k verbatim
// into a child environment, the first act after constructing the
// ground environment.
func NewStandard(onError func(*kernel.ErrorObject)) (*Driver, error) {
	d := newDriver(onError)
	std := kernel.NewEnvironment([]*kernel.Environment{d.Env})
	if err := d.loadFile("kernel.k", std); err != nil {
		return nil, err
	}
	d.Env = std
	return d, nil
}

// NewExtended builds the standard environment, then layers
// extension.k on top of it in its own child environment for the
// optional extended tier (interactive conveniences, additional library
// procedures not part of the minimal report).
func NewExtended(onError func(*kernel.ErrorObject)) (*Driver, error) {
	d, err := NewStandard(onError)
	if err != nil {
		return nil, err
	}
	ext := kernel.NewEnvironment([]*kernel.Environment{d.Env})
	if err := d.loadFile("extension.k", ext); err != nil {
		return nil, err
	}
	d.Env = ext
	return d, nil
}

func (d *Driver) loadFile(name string, env *kernel.Environment) error {
	exprs, err := loadSource(name)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		kernel.RunHooked(expr, env, d.Root, d.Hooks)
	}
	return nil
}

// Eval runs one already-parsed expression to completion in the
// driver's current environment, observed by d.Hooks or, when that is
// nil, by the hooks a program installed with debug-on.
func (d *Driver) Eval(expr kernel.Value) kernel.Value {
	h := d.Hooks
	if h == nil {
		h = kernel.ActiveHooks()
	}
	return kernel.RunHooked(expr, d.Env, d.Root, h)
}

// EvalSource parses and evaluates every top-level expression in src in
// sequence, returning the last result — the whole-file semantics the
// CLI's interpret subcommand needs.
func (d *Driver) EvalSource(file, src string) (kernel.Value, error) {
	exprs, err := reader.ReadAll(file, src)
	if err != nil {
		return nil, err
	}
	var result kernel.Value = kernel.Inert
	for _, expr := range exprs {
		result = d.Eval(expr)
	}
	return result, nil
}
