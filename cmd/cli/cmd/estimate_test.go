package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
	"construction-cost/internal/logging"
)

func TestMain(m *testing.M) {
	logging.UseNop()
	os.Exit(m.Run())
}

func TestReadSpec(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSpec(&buf, types.ExampleSpec()); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "house.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := readSpec(path, nil)
	if err != nil {
		t.Fatalf("readSpec(file): %v", err)
	}
	fromStdin, err := readSpec("-", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("readSpec(stdin): %v", err)
	}
	if !reflect.DeepEqual(fromFile, types.ExampleSpec()) || !reflect.DeepEqual(fromStdin, fromFile) {
		t.Error("spec did not survive the round trip")
	}
}

func TestReadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.json")
	if err := os.WriteFile(unknown, []byte(`{"floors": 2, "storeys": 2}`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want errors.Type
	}{
		{"missing file", filepath.Join(dir, "nope.json"), errors.TypeInput},
		{"unknown field", unknown, errors.TypeParsing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readSpec(tt.path, nil)
			if !errors.IsType(err, tt.want) {
				t.Errorf("error = %v, want type %s", err, tt.want)
			}
		})
	}
}

func TestLoadStoreDefaults(t *testing.T) {
	store, err := loadStore(config.RatesConfig{})
	if err != nil {
		t.Fatalf("loadStore: %v", err)
	}
	if store.Fingerprint() == "" || len(store.Sources()) != 1 {
		t.Errorf("store = %s %v", store.Fingerprint(), store.Sources())
	}
}

func TestDescribeInputError(t *testing.T) {
	spec := types.ExampleSpec()
	spec.Floors = 0
	spec.Slab.Area = -1

	var out bytes.Buffer
	err := describeInputError(&out, spec.Validate())
	if !errors.IsInvalidInput(err) {
		t.Fatalf("error = %v", err)
	}
	for _, want := range []string{"floors:", "slab.area:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
