package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

var datasetFiles = []string{"news.json", "scores.json", "products.json", "users.json", "orders.json"}

func (d *Dataset) targets() []any {
	return []any{&d.News, &d.Scores, &d.Products, &d.Users, &d.Orders}
}

// WriteDataset serializes each collection into its own JSON file under dir.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, target := range dataset.targets() {
		if err := writeJSON(filepath.Join(dir, datasetFiles[i]), target); err != nil {
			return err
		}
	}
	return nil
}

// ReadDataset loads the files written by WriteDataset. Every file must exist.
func ReadDataset(dir string) (Dataset, error) {
	var ds Dataset
	for i, target := range ds.targets() {
		if err := readJSON(filepath.Join(dir, datasetFiles[i]), target); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

func writeJSON(path string, data any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
