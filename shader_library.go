package main

import (
	"embed"
	"fmt"
	"path"
	"path/filepath"

	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/shaders"
)

//go:embed res/shaders
var embeddedShaders embed.FS

const shaderDir = "res/shaders"

var libLog = logging.Module("ShaderLibrary")

type libraryEntry struct {
	files []string
	setup func(sp *shaders.ShaderProgram)

	// Programs are handed out as pointers and replaced in place on reload
	prog *shaders.ShaderProgram
}

// shaderLibrary builds programs from the embedded shaders, or from disk when
// watching so that edits are picked up while running
type shaderLibrary struct {
	watcher *shaders.Watcher
	entries map[string]*libraryEntry
}

func newShaderLibrary(watch bool) (*shaderLibrary, error) {

	lib := &shaderLibrary{entries: map[string]*libraryEntry{}}
	if !watch {
		return lib, nil
	}

	w, err := shaders.NewWatcher()
	if err != nil {
		return nil, err
	}

	lib.watcher = w
	return lib, nil
}

// Load builds a program from one combined .glsl file or from one file per stage.
// setup runs after every successful build, including reloads, and is where
// uniforms that never change should be set.
func (lib *shaderLibrary) Load(name string, setup func(sp *shaders.ShaderProgram), files ...string) (*shaders.ShaderProgram, error) {

	if _, ok := lib.entries[name]; ok {
		return nil, fmt.Errorf("shader program '%s' is already loaded", name)
	}

	sp, err := lib.build(files)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader program '%s': %w", name, err)
	}
	sp.Name = name

	e := &libraryEntry{files: files, setup: setup, prog: &sp}
	lib.entries[name] = e

	if setup != nil {
		setup(e.prog)
	}

	if lib.watcher != nil {

		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = filepath.Join(shaderDir, f)
		}

		if err := lib.watcher.Watch(name, paths...); err != nil {
			return nil, err
		}
	}

	libLog.Info("Loaded shader program", "name", name, "id", sp.Id, "files", files)
	return e.prog, nil
}

func (lib *shaderLibrary) build(files []string) (shaders.ShaderProgram, error) {

	if len(files) == 1 && path.Ext(files[0]) == ".glsl" {

		if lib.watcher != nil {
			return shaders.LoadAndCompileCombinedShader(filepath.Join(shaderDir, files[0]))
		}

		src, err := embeddedShaders.ReadFile(path.Join(shaderDir, files[0]))
		if err != nil {
			return shaders.ShaderProgram{}, err
		}

		return shaders.LoadAndCompileCombinedShaderSrc(src)
	}

	shdrs := make([]shaders.Shader, 0, len(files))
	deleteAll := func() {
		for i := range shdrs {
			shdrs[i].Delete()
		}
	}

	for _, f := range files {

		var (
			s   shaders.Shader
			err error
		)

		if lib.watcher != nil {
			s, err = shaders.LoadShaderFile(filepath.Join(shaderDir, f))
		} else {
			s, err = compileEmbedded(f)
		}

		if err != nil {
			deleteAll()
			return shaders.ShaderProgram{}, err
		}

		shdrs = append(shdrs, s)
	}

	return shaders.NewShaderProgramFromShaders(shdrs...)
}

func compileEmbedded(file string) (shaders.Shader, error) {

	shaderType, err := shaders.ShaderTypeFromPath(file)
	if err != nil {
		return shaders.Shader{}, err
	}

	src, err := embeddedShaders.ReadFile(path.Join(shaderDir, file))
	if err != nil {
		return shaders.Shader{}, err
	}

	return shaders.CompileShaderOfType(src, shaderType)
}

// ReloadChanged rebuilds every program whose files changed. A program that fails
// to build keeps running with its previous version.
func (lib *shaderLibrary) ReloadChanged() {

	if lib.watcher == nil {
		return
	}

	for _, name := range lib.watcher.Changed() {

		e, ok := lib.entries[name]
		if !ok {
			continue
		}

		sp, err := lib.build(e.files)
		if err != nil {
			libLog.Error("Failed to reload shader program, keeping the old one", "name", name, "err", err)
			continue
		}

		sp.Name = name
		e.prog.Delete()
		*e.prog = sp

		if e.setup != nil {
			e.setup(e.prog)
		}

		libLog.Info("Reloaded shader program", "name", name, "id", sp.Id)
	}
}

func (lib *shaderLibrary) Close() {

	for _, e := range lib.entries {
		e.prog.Delete()
	}
	lib.entries = map[string]*libraryEntry{}

	if lib.watcher != nil {
		if err := lib.watcher.Close(); err != nil {
			libLog.Error("Failed to close shader watcher", "err", err)
		}
	}
}
