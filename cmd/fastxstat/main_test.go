package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGCPercent(t *testing.T) {
	cases := []struct {
		dna  string
		want float64
	}{
		{"", 0},
		{"AAAA", 0},
		{"GGCC", 100},
		{"ATGC", 50},
		{"atGC", 50},
	}
	for _, c := range cases {
		got := gcPercent([]byte(c.dna))
		if got != c.want {
			t.Errorf("gcPercent(%q) = %v, want %v", c.dna, got, c.want)
		}
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.fasta")
	content := ">one\nAAAA\n>two\nGGCC\n>one\nAAAA\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := collect(path)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].header != "one" || records[0].length != 4 || records[0].gc != 0 {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].header != "two" || records[1].gc != 100 {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[0].hash != records[2].hash {
		t.Errorf("identical sequences hashed differently: %x vs %x", records[0].hash, records[2].hash)
	}
	if records[0].hash == records[1].hash {
		t.Errorf("distinct sequences hashed identically")
	}
}

func TestCollectUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("not a sequence file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := collect(path); err == nil {
		t.Fatalf("expected an error for unknown format")
	}
}
