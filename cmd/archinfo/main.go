package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xyproto/env/v2"
)

// Config represents the configuration loaded from the JSON file
type Config struct {
	Arch     string `json:"arch"`      // Architecture name; empty means the host
	DataPath string `json:"data_path"` // Snapshot store directory
}

const usage = `usage: archinfo [flags] <command> [args]

commands:
  list                 print every register of the architecture
  lookup <name|id>...  resolve register names or numbers
  info                 print architecture summary
  save                 store a new session for the architecture
  restore <uuid>       load a stored session
  sessions             list stored session ids

flags:
`

func main() {
	configPath := flag.String("config-path", "", "Path to a JSON configuration file")
	archName := flag.String("arch", "", "Architecture (arm32, arm64); defaults to the host")
	dataPath := flag.String("data-path", "", "Path to the snapshot data directory")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config, err := loadConfig(*configPath, *archName, *dataPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(config, flag.Args(), os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// loadConfig layers, lowest priority first: defaults, the JSON file,
// ARCHINFO_* environment variables, then command-line flags.
func loadConfig(configPath, archFlag, dataPathFlag string) (Config, error) {
	config := Config{DataPath: "./data"}

	if configPath != "" {
		configData, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(configData, &config); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// env caches the environment on first use; refresh it so each call sees
	// the current values.
	env.Load()
	config.Arch = env.Str("ARCHINFO_ARCH", config.Arch)
	config.DataPath = env.Str("ARCHINFO_DATA_PATH", config.DataPath)

	if archFlag != "" {
		config.Arch = archFlag
	}
	if dataPathFlag != "" {
		config.DataPath = dataPathFlag
	}
	return config, nil
}
