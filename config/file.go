package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/files"
)

// ErrWrongVersion is returned for configuration files of an unsupported
// version.
var ErrWrongVersion = errors.New("config file version is not 1")

// DefaultFiles are the configuration files looked up when none is given.
var DefaultFiles = []string{".gopathdeps.yml", ".gopathdeps.yaml", ".gopathdeps.toml"}

// File is the contents of a configuration file.
type File struct {
	Version      int                    `mapstructure:"version"`
	Package      string                 `mapstructure:"package"`
	Build        BuildProperties        `mapstructure:"build"`
	Toolchain    ToolchainProperties    `mapstructure:"toolchain"`
	Dependencies DependenciesProperties `mapstructure:"dependencies"`
}

type BuildProperties struct {
	Gopath string `mapstructure:"gopath"`
}

type ToolchainProperties struct {
	Goroot           string `mapstructure:"goroot"`
	ImportsExtractor string `mapstructure:"imports_extractor"`
}

type DependenciesProperties struct {
	Cache            string `mapstructure:"cache"`
	ForceUpdate      *bool  `mapstructure:"force_update"`
	DeleteUnknown    *bool  `mapstructure:"delete_unknown"`
	DeleteAllOnClean *bool  `mapstructure:"delete_all_on_clean"`
	Parallelism      int    `mapstructure:"parallelism"`

	Build []DependencyProperties `mapstructure:"build"`
	Test  []DependencyProperties `mapstructure:"test"`
	Tool  []DependencyProperties `mapstructure:"tool"`
}

// DependencyProperties declares a single dependency. In a file, it is either
// a bare import path or a map of these properties.
type DependencyProperties struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	Type     string `mapstructure:"type"`
	Location string `mapstructure:"location"`
}

// ReadFile reads the configuration file at path, or the first of the
// DefaultFiles that exists when path is empty. It returns the parsed file and
// its name.
func ReadFile(path string) (File, string, error) {
	filename := path
	if filename == "" {
		var err error
		filename, err = TryFiles(DefaultFiles...)
		if err != nil {
			return File{}, "", err
		}
	}

	f, err := ParseFile(filename)
	if err != nil {
		return File{}, "", errors.Wrapf(err, "could not read configuration file %s", filename)
	}
	return f, filename, nil
}

// ParseFile parses a YAML or TOML configuration file, chosen by extension.
func ParseFile(filename string) (File, error) {
	var contents map[string]interface{}
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = files.ReadTOML(&contents, filename)
	default:
		err = files.ReadYAML(&contents, filename)
	}
	if err != nil {
		return File{}, err
	}
	return Decode(contents)
}

// Decode converts an unmarshalled configuration document into a File.
func Decode(contents map[string]interface{}) (File, error) {
	var f File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       dependencyHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &f,
	})
	if err != nil {
		return File{}, err
	}
	err = decoder.Decode(contents)
	if err != nil {
		return File{}, err
	}
	if f.Version != 1 {
		return File{}, ErrWrongVersion
	}
	return f, nil
}

var dependencyPropertiesType = reflect.TypeOf(DependencyProperties{})

// dependencyHook allows a dependency to be declared by its import path alone.
func dependencyHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() == reflect.String && to == dependencyPropertiesType {
		return map[string]interface{}{"name": data}, nil
	}
	return data, nil
}
