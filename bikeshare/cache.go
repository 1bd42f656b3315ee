package bikeshare

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// SerializeDataset encodes a Dataset to bytes using msgpack.
// This is useful for disk-based caching to avoid re-parsing the trip log.
//
// Example:
//
//	ds, _ := bikeshare.NewDatasetFromReaders(stations, trips, loc)
//	data, err := bikeshare.SerializeDataset(ds)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/path/to/cache/dataset.msgpack", data, 0644)
func SerializeDataset(ds *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeDatasetToWriter(ds, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeDataset decodes a Dataset from bytes produced by SerializeDataset.
// Trip timestamps come back in the dataset's own time zone.
//
// Example:
//
//	data, _ := os.ReadFile("/path/to/cache/dataset.msgpack")
//	ds, err := bikeshare.DeserializeDataset(data)
//	if err != nil {
//	    // Cache is corrupted or invalid, parse the source documents again
//	}
func DeserializeDataset(data []byte) (*Dataset, error) {
	return DeserializeDatasetFromReader(bytes.NewReader(data))
}

// SerializeDatasetToFile writes a Dataset to a file using msgpack.
func SerializeDatasetToFile(ds *Dataset, filepath string) error {
	data, err := SerializeDataset(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// DeserializeDatasetFromFile reads a Dataset from a file written by SerializeDatasetToFile.
func DeserializeDatasetFromFile(filepath string) (*Dataset, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeDataset(data)
}

// SerializeDatasetToWriter writes a Dataset to an io.Writer using msgpack.
func SerializeDatasetToWriter(ds *Dataset, w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(ds); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// DeserializeDatasetFromReader reads a Dataset from an io.Reader using msgpack.
func DeserializeDatasetFromReader(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := msgpack.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	ds.NormalizeZone()
	return &ds, nil
}
