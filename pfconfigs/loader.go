package pfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"

	"github.com/reusee/pf/cmds"
	"github.com/reusee/pf/configs"
	"github.com/reusee/pf/logs"
)

//go:embed schema.cue
var schema string

// ConfigFiles lists candidate cue files, most specific first
type ConfigFiles []string

var configFlag = cmds.Collect[string]("-config")

func (Module) ConfigFiles() ConfigFiles {
	// files named on the command line come first
	ret := ConfigFiles(slices.Clone(*configFlag))

	filenames := []string{
		"pf.cue",
		".pf.cue",
	}

	var dirs []string
	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	// system wide dir
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			ret = append(ret, filepath.Join(dir, filename))
		}
	}
	return ret
}

func (Module) ConfigsLoader(
	files ConfigFiles,
	logger logs.Logger,
) configs.Loader {
	loader := newLoader(files)
	loaded, err := loader.Files()
	if err != nil {
		logger.Error("load config files", "error", err)
	} else if len(loaded) > 0 {
		logger.Info("config file",
			"paths", loaded,
		)
	}
	return loader
}

func newLoader(files ConfigFiles) configs.Loader {
	return configs.NewLoader(files, schema)
}
