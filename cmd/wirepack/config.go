package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/wirepack"
)

// loadProfile overlays the YAML options profile at path onto base.
//
// Keys mirror wirepack.Options:
//
//	format: cbor
//	compression: zstd
//	level: best
//	alphabet: urlsafe
//	checksum: true
//	max_decoded_size: 1048576
//
// Unknown keys are rejected. An empty file leaves base unchanged.
func loadProfile(path string, base wirepack.Options) (wirepack.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wirepack.Options{}, fmt.Errorf("read config: %w", err)
	}

	opts, err := parseProfile(data, base)
	if err != nil {
		return wirepack.Options{}, &usageError{err: fmt.Errorf("config %s: %w", path, err)}
	}

	return opts, nil
}

func parseProfile(data []byte, base wirepack.Options) (wirepack.Options, error) {
	opts := base

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}

		return wirepack.Options{}, err
	}

	return opts, nil
}
