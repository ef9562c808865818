package utils

import (
	"os"
	"path"
	"runtime"
	"strings"
)

func ExpandDefaultPath(dataDir string, currentValue string, defaultFileName string) string {
	if currentValue == "" {
		return path.Join(dataDir, defaultFileName)
	}

	return currentValue
}

func ExpandHomeDir(value string) string {
	if value != "~" && !strings.HasPrefix(value, "~/") {
		return value
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return value
	}

	return path.Join(homeDir, strings.TrimPrefix(value, "~"))
}

func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()

	if err != nil {
		return "", err
	}

	dataFolder := "lnaddress"

	if runtime.GOOS != "windows" {
		dataFolder = "." + dataFolder
	}

	return path.Join(homeDir, dataFolder), nil
}
