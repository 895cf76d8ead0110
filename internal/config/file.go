package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	errConfigIsDir     = errors.New("config path is a directory")
	errMissingFilePath = errors.New("session.file_path is required for the file store")
)

func readFile(path string, cfg *Config) error {
	filename, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	finfo, err := os.Stat(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if finfo.IsDir() {
		return errConfigIsDir
	}

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return nil
}
