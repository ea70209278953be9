package misc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return []byte{}, errors.New("no filename supplied")
	}
	// open file for reading
	file, err := os.Open(fileName)
	if err != nil {
		return []byte{}, fmt.Errorf("unable to open %s - %w", fileName, err)
	}
	// read contents from open file
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		file.Close()
		return []byte{}, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return []byte{}, fmt.Errorf("unable to close %s - %w", fileName, err)
	}

	return fileBytes, nil
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	// write contents to open file
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, err)
	}

	return bytesWritten, nil
}

// LoadSettings decodes a JSON settings file into settings.
func LoadSettings(fileName string, settings interface{}) error {
	fileBytes, err := ReadFile(fileName)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(fileBytes, settings); err != nil {
		return fmt.Errorf("unable to decode settings %s - %w", fileName, err)
	}
	return nil
}

// SaveSettings writes settings as JSON so a run can be repeated later.
func SaveSettings(fileName string, settings interface{}) error {
	fileBytes, err := sonic.Marshal(settings)
	if err != nil {
		return fmt.Errorf("unable to encode settings - %w", err)
	}
	_, err = WriteFile(fileName, fileBytes)
	return err
}

// FixImagePath turns a user supplied output path into a png file path. An empty path
// becomes defaultName in the working directory, a directory gets defaultName appended and
// any other extension is replaced with .png.
func FixImagePath(path string, defaultName string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, defaultName), nil
	}

	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return filepath.Join(path, defaultName), nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultName), nil
	}

	extension := filepath.Ext(path)
	if filepath.Base(path) == extension {
		// A dot file like .hidden has no extension to replace
		return path + ".png", nil
	}
	if strings.ToLower(extension) != ".png" {
		path = strings.TrimSuffix(path, extension) + ".png"
	}
	return path, nil
}

// EnsureDirectory creates path, and any missing parents, if it does not exist.
func EnsureDirectory(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %s - %w", path, err)
		}
	}
	return nil
}

// ClearDirectory removes the regular files directly inside path. Sub directories are left
// alone.
func ClearDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("unable to read folder %s - %w", path, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(path, entry.Name())); err != nil {
			return fmt.Errorf("unable to remove %s - %w", entry.Name(), err)
		}
	}
	return nil
}
