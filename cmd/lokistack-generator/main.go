package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/ViaQ/logerr/v2/log"
	"github.com/ViaQ/logerr/v2/log/static"
	"github.com/go-logr/logr"
	"github.com/openshift/lokistack-generator/internal/pkg/generator/manifests"
	"github.com/spf13/pflag"
)

const component = "lokistack-generator"

func main() {
	logLevel, present := os.LookupEnv("LOG_LEVEL")

	var logger logr.Logger
	if present {
		verbosity, err := strconv.Atoi(logLevel)
		if err != nil {
			log.NewLogger(component).Error(err, "LOG_LEVEL must be an integer")
			os.Exit(1)
		}
		logger = log.NewLogger(component, log.WithVerbosity(verbosity))
	} else {
		logger = log.NewLogger(component)
	}
	static.SetLogger(logger)

	yamlFile := flag.String("file", "-", "lokistack options yaml file. - for stdin")
	outputDir := flag.String("output-dir", "", "Directory to write the manifests and create.sh to. Printed to stdout when empty")
	createNamespace := flag.Bool("create-namespace", false, "Include a manifest creating the stack namespace")
	help := flag.Bool("help", false, "This message")
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(1)
	}
	logger.V(1).Info("LokiStack Generator Main", "Args", os.Args)

	var reader func() ([]byte, error)
	switch *yamlFile {
	case "-":
		logger.Info("Reading from stdin")
		reader = func() ([]byte, error) {
			return io.ReadAll(bufio.NewReader(os.Stdin))
		}
	case "":
		logger.Info("received empty yamlfile, using defaults")
		reader = func() ([]byte, error) { return []byte{}, nil }
	default:
		logger.Info("reading lokistack options from yaml file", "filename", *yamlFile)
		reader = func() ([]byte, error) { return os.ReadFile(*yamlFile) }
	}

	content, err := reader()
	if err != nil {
		logger.Error(err, "Error reading file", "file", *yamlFile)
		os.Exit(1)
	}
	logger.V(2).Info("Finished reading yaml", "content", string(content))

	project, err := manifests.Generate(string(content), *createNamespace)
	if err != nil {
		logger.Error(err, "Unable to generate lokistack manifests")
		os.Exit(1)
	}

	if *outputDir == "" {
		if err := project.Print(os.Stdout); err != nil {
			logger.Error(err, "Unable to print manifests")
			os.Exit(1)
		}
		return
	}
	if err := project.WriteTo(*outputDir); err != nil {
		logger.Error(err, "Unable to write manifests", "dir", *outputDir)
		os.Exit(1)
	}
	logger.Info("manifests written", "dir", *outputDir, "files", project.Files())
}
