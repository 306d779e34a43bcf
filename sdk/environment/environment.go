// Package environment loads process configuration from environment variables,
// optionally seeded from a .env file, with support for namespaced keys.
package environment

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error; every other failure is.
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads variables from the file at p, or from .env when p is empty.
// Variables already present in the process environment are never overridden.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// GetNamespaceEnvKey joins namespace and key with an underscore.
//
//	GetNamespaceEnvKey("TASKBOARD", "PORT") // "TASKBOARD_PORT"
//	GetNamespaceEnvKey("", "PORT")          // "PORT"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}
